package router

import (
	"strings"

	tg "github.com/m3rciful/recipebot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes handles free text. Aliased commands typed as text resolve
// through the registry, other slash commands are skipped, and the rest goes
// to the registry text fallback.
func TextRoutes(reg *tg.Registry) []tg.Route {
	return []tg.Route{{
		Endpoint: tele.OnText,
		Handler: wrap(func(c tele.Context) error {
			text := c.Text()
			if !strings.HasPrefix(text, "/") {
				return observe(c, reg, "text", reg.TextFallback())
			}
			if key, cmd, ok := reg.LookupCommand(text); ok {
				return observe(c, reg, handlerName(key), cmd.Handler)
			}
			return observe(c, reg, "unknown_command", nil)
		}),
	}}
}
