package middleware

import (
	"log/slog"

	"github.com/m3rciful/recipebot/core/logger"
	"github.com/m3rciful/recipebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/recipebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const loggedKey = "update_logged"

// LoggerMiddleware writes one debug line per update and primes the update's
// logging context. Nested applications on the same update log once.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if logged, _ := c.Get(loggedKey).(bool); !logged {
			c.Set(loggedKey, true)
			logger.Debug(tghelpers.Context(c), "tg", "update.received", receivedAttrs(c)...)
		}
		return next(c)
	}
}

func receivedAttrs(c tele.Context) []slog.Attr {
	var attrs []slog.Attr
	if chat := c.Chat(); chat != nil {
		attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
	}
	if u := c.Sender(); u != nil {
		attrs = append(attrs,
			slog.String("username", logger.SanitizeLimit(u.Username, 64)),
			slog.String("lang", u.LanguageCode),
		)
	}
	switch upd := c.Update(); {
	case upd.Callback != nil:
		attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(callbacks.Data(c), 256)))
	case upd.Message != nil:
		attrs = append(attrs, slog.String("text", logger.SanitizeLimit(c.Text(), 256)))
	}
	return attrs
}
