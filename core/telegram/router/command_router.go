package router

import (
	"log/slog"

	"github.com/m3rciful/recipebot/core/logger"
	tg "github.com/m3rciful/recipebot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes binds every registered command to its slash endpoint.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	cmds := reg.Commands()
	routes := make([]tg.Route, 0, len(cmds))
	for name, cmd := range cmds {
		label, h := handlerName(name), cmd.Handler
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler: wrap(func(c tele.Context) error {
				return observe(c, reg, label, h)
			}),
		})
	}
	logger.TWire.Info("wire.complete",
		slog.Int("commands", len(cmds)),
		slog.Int("callbacks", len(reg.CallbackKeys())),
	)
	return routes
}
