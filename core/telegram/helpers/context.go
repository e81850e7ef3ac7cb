package helpers

import (
	"context"

	"github.com/m3rciful/recipebot/core/logger"

	tele "gopkg.in/telebot.v4"
)

const ctxKey = "ctx"

// UpdateMeta extracts the ids that identify c's update in logs.
func UpdateMeta(c tele.Context) logger.Meta {
	var m logger.Meta
	if c == nil {
		return m
	}
	m.UpdateID = c.Update().ID
	if u := c.Sender(); u != nil {
		m.UserID = u.ID
	}
	if ch := c.Chat(); ch != nil {
		m.ChatID = ch.ID
	}
	return m
}

// Context returns the per-update context carrying UpdateMeta, creating and
// caching it on c the first time.
func Context(c tele.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if ctx, ok := c.Get(ctxKey).(context.Context); ok {
		return ctx
	}
	ctx := logger.WithMeta(context.Background(), UpdateMeta(c))
	c.Set(ctxKey, ctx)
	return ctx
}
