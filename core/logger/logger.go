// Package logger configures the process-wide structured logger and the
// component loggers derived from it.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/m3rciful/recipebot/core/buildinfo"
	coreconfig "github.com/m3rciful/recipebot/core/config"
)

var (
	mu    sync.Mutex
	level slog.LevelVar
	files []io.Closer

	// L is the base logger; component loggers below derive from it.
	L *slog.Logger

	// DB logs database connection events.
	DB *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
	// TWire logs Telegram wiring steps (commands, callbacks, routes).
	TWire *slog.Logger
	// Recipes logs recipe API client activity.
	Recipes *slog.Logger
	// Journal logs search journal writes.
	Journal *slog.Logger
	// Metrics logs the metrics HTTP endpoint lifecycle.
	Metrics *slog.Logger
)

func init() {
	// Tests and early startup log through the slog default.
	setBase(slog.Default())
}

func setBase(base *slog.Logger) {
	L = base
	DB = L.With("component", "db")
	MIG = L.With("component", "db.migrate")
	TG = L.With("component", "tg")
	TWire = L.With("component", "tg.wire")
	Recipes = L.With("component", "recipes")
	Journal = L.With("component", "journal")
	Metrics = L.With("component", "metrics")
}

// Init installs the structured handler described by cfg.Logging as the slog
// default and rebuilds the component loggers.
func Init(cfg *coreconfig.Config) error {
	if cfg == nil {
		return errors.New("logger: nil config")
	}
	mu.Lock()
	defer mu.Unlock()

	level.Set(parseLevel(cfg.Logging.Level))

	out := io.Writer(os.Stdout)
	if path := filePath(cfg.Logging); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("logger: open log file: %w", err)
		}
		files = append(files, f)
		out = io.MultiWriter(os.Stdout, f)
	}

	base := slog.New(newHandler(out, formatFor(cfg.Logging), &level))
	slog.SetDefault(base)
	setBase(base)

	L.Info("startup",
		slog.String("component", "app"),
		slog.String("go_version", runtime.Version()),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("mode", cfg.Telegram.RunMode),
		slog.String("profile", profile(cfg.Logging)),
	)
	return nil
}

// Shutdown closes log files opened by Init. Later records go to stdout only.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if len(files) == 0 {
		return nil
	}
	setBase(slog.New(newHandler(os.Stdout, formatJSON, &level)))
	var errs []error
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	files = nil
	return errors.Join(errs...)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func profile(c coreconfig.LoggingConfig) string {
	if p := strings.ToLower(strings.TrimSpace(c.Profile)); p != "" {
		return p
	}
	return "prod"
}

// formatFor picks kv or json; debug/dev profiles default to kv.
func formatFor(c coreconfig.LoggingConfig) string {
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "kv", "text":
		return formatKV
	case "json":
		return formatJSON
	}
	if p := profile(c); p == "debug" || p == "dev" {
		return formatKV
	}
	return formatJSON
}

func filePath(c coreconfig.LoggingConfig) string {
	dir, name := strings.TrimSpace(c.Dir), strings.TrimSpace(c.BotFile)
	if dir == "" || name == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// Debug logs event for component at debug level.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, component, event, attrs)
}

// Info logs event for component at info level.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, component, event, attrs)
}

// Warn logs event for component at warn level.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, component, event, attrs)
}

// Error logs event for component at error level.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, component, event, attrs)
}

func emit(ctx context.Context, lvl slog.Level, component, event string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !L.Enabled(ctx, lvl) {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.String("component", component))
	L.LogAttrs(ctx, lvl, event, append(all, attrs...)...)
}
