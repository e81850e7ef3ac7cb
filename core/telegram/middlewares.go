package telegram

import (
	"github.com/m3rciful/recipebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares builds the shared middleware chain for bots.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}

// Chain applies middlewares to h so that the first middleware runs outermost.
func Chain(h tele.HandlerFunc, mws ...Middleware) tele.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i].Use != nil {
			h = mws[i].Use(h)
		}
	}
	return h
}
