package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/recipebot/core/logger"
	"github.com/m3rciful/recipebot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

const (
	// CounterMessages is the tele.Context key holding the number of outbound messages.
	CounterMessages = "messages"
	// CounterKeyboard is the tele.Context key set when any outbound message carried markup.
	CounterKeyboard = "kb"
)

var dispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher routes SendText and EditText through d; nil makes them synchronous.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcher.Store(d)
}

// SendText sends text to the current chat.
func SendText(c tele.Context, text string, opts *tele.SendOptions) error {
	count(c, opts)
	return submit(c, sender.OpSend, func() error { return c.Send(text, options(opts)...) })
}

// EditText replaces the message the current callback came from.
func EditText(c tele.Context, text string, opts *tele.SendOptions) error {
	count(c, opts)
	return submit(c, sender.OpEdit, func() error { return c.Edit(text, options(opts)...) })
}

// Ack answers the current callback query without a notification. It runs
// inline so the client spinner stops before any queued edit lands.
func Ack(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return c.Respond()
}

func submit(c tele.Context, op sender.Op, run func() error) error {
	d := dispatcher.Load()
	if d == nil {
		return run()
	}
	ctx := Context(c)
	err := d.Do(ctx, UpdateMeta(c).ChatID, op, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrClosed) {
		logger.Warn(ctx, "tg.sender", "queue.bypass", slog.String("op", string(op)), slog.String("err", err.Error()))
		return run()
	}
	return err
}

// options drops a nil *SendOptions, which telebot would dereference.
func options(opts *tele.SendOptions) []any {
	if opts == nil {
		return nil
	}
	return []any{opts}
}

func count(c tele.Context, opts *tele.SendOptions) {
	n, _ := c.Get(CounterMessages).(int)
	c.Set(CounterMessages, n+1)
	if opts != nil && opts.ReplyMarkup != nil {
		c.Set(CounterKeyboard, true)
	}
}
