package middleware

import (
	tghelpers "github.com/m3rciful/recipebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// MessageMetricsMiddleware resets the per-update outbound counters filled by the send helpers.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(tghelpers.CounterMessages, 0)
		c.Set(tghelpers.CounterKeyboard, false)
		return next(c)
	}
}

// GetCounters reads message count and keyboard presence flags from context.
func GetCounters(c tele.Context) (int, bool) {
	msgs, _ := c.Get(tghelpers.CounterMessages).(int)
	kb, _ := c.Get(tghelpers.CounterKeyboard).(bool)
	return msgs, kb
}
