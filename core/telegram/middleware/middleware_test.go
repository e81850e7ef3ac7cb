package middleware

import (
	"errors"
	"testing"

	"github.com/m3rciful/recipebot/core/logger"
	tghelpers "github.com/m3rciful/recipebot/core/telegram/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

// fakeContext stores values like telebot's native context; everything else panics if touched.
type fakeContext struct {
	tele.Context
	update tele.Update
	store  map[string]any
}

func newFakeContext(upd tele.Update) *fakeContext {
	return &fakeContext{update: upd, store: map[string]any{}}
}

func (f *fakeContext) Get(key string) any { return f.store[key] }
func (f *fakeContext) Set(key string, v any) { f.store[key] = v }
func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Sender() *tele.User { return f.update.Message.Sender }
func (f *fakeContext) Chat() *tele.Chat { return f.update.Message.Chat }
func (f *fakeContext) Text() string { return f.update.Message.Text }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }

func textUpdate() tele.Update {
	return tele.Update{ID: 42, Message: &tele.Message{
		Text:   "🥗 Vegetarian",
		Sender: &tele.User{ID: 7},
		Chat:   &tele.Chat{ID: 7, Type: tele.ChatPrivate},
	}}
}

func TestRecoverMiddlewareTurnsPanicIntoError(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(newFakeContext(textUpdate()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRecoverMiddlewarePassesErrors(t *testing.T) {
	want := errors.New("send failed")
	h := RecoverMiddleware(func(tele.Context) error { return want })
	assert.ErrorIs(t, h(newFakeContext(textUpdate())), want)
}

func TestMessageMetricsMiddlewareResetsCounters(t *testing.T) {
	c := newFakeContext(textUpdate())
	c.Set("messages", 5)
	c.Set("kb", true)

	h := MessageMetricsMiddleware(func(c tele.Context) error {
		msgs, kb := GetCounters(c)
		assert.Equal(t, 0, msgs)
		assert.False(t, kb)
		return nil
	})
	require.NoError(t, h(c))
}

func TestLoggerMiddlewarePrimesContextOnce(t *testing.T) {
	c := newFakeContext(textUpdate())
	var meta logger.Meta
	calls := 0
	inner := func(c tele.Context) error {
		calls++
		meta, _ = logger.MetaFrom(tghelpers.Context(c))
		return nil
	}
	h := LoggerMiddleware(LoggerMiddleware(inner))

	require.NoError(t, h(c))
	assert.Equal(t, 1, calls)
	assert.Equal(t, logger.Meta{UpdateID: 42, UserID: 7, ChatID: 7}, meta)
	assert.Equal(t, true, c.Get(loggedKey))
}
