package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

const (
	formatJSON = "json"
	formatKV   = "kv"

	tsLayout = "2006-01-02T15:04:05.000Z07:00"
)

// newHandler builds the slog handler behind every logger: the record message
// becomes the "event" key and update metadata is read from the context.
func newHandler(w io.Writer, format string, lvl slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: replaceAttr}
	if format == formatKV {
		return metaHandler{slog.NewTextHandler(w, opts)}
	}
	return metaHandler{slog.NewJSONHandler(w, opts)}
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey:
			return slog.String("ts", a.Value.Time().UTC().Format(tsLayout))
		case slog.MessageKey:
			if a.Value.String() == "" {
				return slog.Attr{}
			}
			return slog.String("event", a.Value.String())
		}
	}
	if a.Value.Kind() == slog.KindDuration {
		return slog.Int64(msKey(a.Key), RoundMS(a.Value.Duration()).Milliseconds())
	}
	if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
		return slog.Attr{}
	}
	return a
}

// msKey renames duration attributes to the *_ms convention.
func msKey(key string) string {
	if strings.HasSuffix(key, "_ms") {
		return key
	}
	return key + "_ms"
}

// metaHandler appends rid, update, user and chat ids stored with WithMeta.
type metaHandler struct {
	slog.Handler
}

func (h metaHandler) Handle(ctx context.Context, r slog.Record) error {
	if m, ok := MetaFrom(ctx); ok {
		r.AddAttrs(m.attrs()...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h metaHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return metaHandler{h.Handler.WithAttrs(attrs)}
}

func (h metaHandler) WithGroup(name string) slog.Handler {
	return metaHandler{h.Handler.WithGroup(name)}
}

// RoundMS rounds d to whole milliseconds; negative values become zero.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// Status maps an error to the ok/fail status used in log lines.
func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}
