package telegram

import (
	"testing"
	"time"

	coreconfig "github.com/m3rciful/recipebot/core/config"
	tgsender "github.com/m3rciful/recipebot/core/telegram/sender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestNewPoller(t *testing.T) {
	lp, ok := newPoller(&coreconfig.Config{Telegram: coreconfig.TelegramConfig{RunMode: coreconfig.RunModeLongpoll}}).(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, lp.Timeout)

	wh, ok := newPoller(&coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{RunMode: coreconfig.RunModeWebhook},
		Webhook:  coreconfig.WebhookConfig{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.com/hook"},
	}).(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://bot.example.com/hook", wh.Endpoint.PublicURL)
}

func TestDispatcherOptionsFromConfig(t *testing.T) {
	cfg := &coreconfig.Config{Sender: coreconfig.SenderConfig{
		QueueSize: 64, Workers: 2, MaxRetries: 1, RetryBackoffMS: 250,
	}}
	got := dispatcherOptions(cfg, tgsender.Options{Workers: 8})
	assert.Equal(t, 64, got.QueueSize)
	assert.Equal(t, 8, got.Workers)
	assert.Equal(t, 1, got.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, got.RetryBackoff)
}

func TestChainOrder(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return Middleware{Name: name, Use: func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(c tele.Context) error {
				trace = append(trace, name)
				return next(c)
			}
		}}
	}
	h := Chain(func(tele.Context) error {
		trace = append(trace, "handler")
		return nil
	}, mw("outer"), Middleware{Name: "nil"}, mw("inner"))

	require.NoError(t, h(nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, trace)
}

func TestRegistryLookupCommand(t *testing.T) {
	reg := NewRegistry()
	noop := func(tele.Context) error { return nil }
	require.NoError(t, reg.RegisterCommand("/start", commandFixture(noop, "menu")))
	require.NoError(t, reg.RegisterCommand("/history", commandFixture(noop, "/recent")))
	assert.ErrorIs(t, reg.RegisterCommand("help", commandFixture(noop)), ErrRegistration)
	assert.ErrorIs(t, reg.RegisterCommand("/start", commandFixture(noop)), ErrRegistration)
	assert.ErrorIs(t, reg.RegisterCommand("/empty", Command{Handler: noop}), ErrRegistration)

	for _, text := range []string{"/menu extra args", "/start@recipe_bot", " /start "} {
		key, _, ok := reg.LookupCommand(text)
		require.True(t, ok, text)
		assert.Equal(t, "/start", key)
	}
	key, _, ok := reg.LookupCommand("/recent")
	require.True(t, ok)
	assert.Equal(t, "/history", key)

	_, _, ok = reg.LookupCommand("/help")
	assert.False(t, ok)

	assert.Equal(t, []tele.Command{
		{Text: "/history", Description: "fixture"},
		{Text: "/start", Description: "fixture"},
	}, reg.BotCommands())
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	noop := func(tele.Context) error { return nil }
	require.NoError(t, reg.RegisterCallback("page", noop))
	assert.ErrorIs(t, reg.RegisterCallback("page", noop), ErrRegistration)
	assert.ErrorIs(t, reg.RegisterCallback("", noop), ErrRegistration)
	assert.ErrorIs(t, reg.RegisterCallback("recipe", nil), ErrRegistration)
	assert.Equal(t, []string{"page"}, reg.CallbackKeys())

	_, ok := reg.Callback("page")
	assert.True(t, ok)
	_, ok = reg.Callback("recipe")
	assert.False(t, ok)

	assert.NotNil(t, reg.CallbackNotFound())
	reg.SetCallbackNotFound(nil)
	assert.NotNil(t, reg.CallbackNotFound())
}

func commandFixture(h tele.HandlerFunc, aliases ...string) Command {
	return Command{Handler: h, Description: "fixture", Aliases: aliases}
}
