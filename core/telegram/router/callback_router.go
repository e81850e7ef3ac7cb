package router

import (
	"log/slog"

	tg "github.com/m3rciful/recipebot/core/telegram"
	"github.com/m3rciful/recipebot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute routes every inline button press by its payload key. Keys
// without a handler go to the registry's not-found handler. Handlers answer
// the callback query themselves.
func CallbackRoute(reg *tg.Registry) tg.Route {
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler: wrap(func(c tele.Context) error {
			if c.Callback() == nil {
				return nil
			}
			key := callbacks.Key(c)
			if h, ok := reg.Callback(key); ok {
				return observe(c, reg, "callback."+handlerName(key), h, slog.String("cb_key", key))
			}
			return observe(c, reg, "callback.unknown", reg.CallbackNotFound(), slog.String("cb_key", key))
		}),
	}
}
