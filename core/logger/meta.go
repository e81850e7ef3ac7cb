package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// Meta identifies the Telegram update a log line belongs to.
type Meta struct {
	UpdateID int
	UserID   int64
	ChatID   int64
}

// RID is the correlation id shared by all lines of one update.
func (m Meta) RID() string {
	return fmt.Sprintf("%d:%d:%d", m.UpdateID, m.ChatID, m.UserID)
}

func (m Meta) attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("rid", m.RID())}
	if m.UpdateID != 0 {
		attrs = append(attrs, slog.Int("update_id", m.UpdateID))
	}
	if m.UserID != 0 {
		attrs = append(attrs, slog.Int64("user_id", m.UserID))
	}
	if m.ChatID != 0 {
		attrs = append(attrs, slog.Int64("chat_id", m.ChatID))
	}
	return attrs
}

type metaKey struct{}

// WithMeta returns ctx carrying m; every record logged with it gets m's fields.
func WithMeta(ctx context.Context, m Meta) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, metaKey{}, m)
}

// MetaFrom returns the update metadata stored in ctx.
func MetaFrom(ctx context.Context) (Meta, bool) {
	if ctx == nil {
		return Meta{}, false
	}
	m, ok := ctx.Value(metaKey{}).(Meta)
	return m, ok
}

// SanitizeLimit drops control and format runes (keeping tab and newline) and
// keeps at most max runes of what remains.
func SanitizeLimit(s string, max int) string {
	if max <= 0 || s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(min(len(s), max*4))
	n := 0
	for _, r := range s {
		if n == max {
			break
		}
		if r != '\n' && r != '\t' && (unicode.IsControl(r) || unicode.Is(unicode.Cf, r)) {
			continue
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
