package router

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/recipebot/core/logger"
	tg "github.com/m3rciful/recipebot/core/telegram"
	tghelpers "github.com/m3rciful/recipebot/core/telegram/helpers"
	"github.com/m3rciful/recipebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

const outcomeSkip = "skip"

// wrap applies the middleware every route shares.
func wrap(h tele.HandlerFunc) tele.HandlerFunc {
	return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
}

// observe runs fn as handler name and writes one summary line for the update.
// A nil fn records the update as skipped.
func observe(c tele.Context, reg *tg.Registry, name string, fn tele.HandlerFunc, extras ...slog.Attr) error {
	start := time.Now()
	outcome := outcomeSkip
	var err error
	if fn != nil {
		err = fn(c)
		outcome = logger.Status(err)
	}

	msgs, kb := middleware.GetCounters(c)
	attrs := append([]slog.Attr{
		slog.String("handler", name),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("took", time.Since(start)),
	}, extras...)
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_type", fmt.Sprintf("%T", err)),
		)
	}
	logger.Info(tghelpers.Context(c), "tg", "handler.handled", attrs...)
	reg.Observe(name, outcome)
	return err
}

// handlerName turns "/Start" or "main menu" into a metric-friendly label.
func handlerName(name string) string {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}
