package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/m3rciful/recipebot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Command is a slash command shown in the bot menu.
type Command struct {
	Description string
	// Aliases are extra names (with or without slash) resolved from plain text.
	Aliases []string
	Handler tele.HandlerFunc
}

// HandlerObserver receives one call per handled update.
type HandlerObserver interface {
	ObserveHandler(handler, outcome string)
}

// ErrRegistration is wrapped by every rejected registration.
var ErrRegistration = errors.New("telegram: invalid registration")

// Registry maps commands and callback keys to handlers. It is filled before
// the bot starts and only read afterwards, so lookups need no locking.
type Registry struct {
	commands  map[string]Command
	callbacks map[string]tele.HandlerFunc
	// unknownCallback answers presses whose key has no handler.
	unknownCallback tele.HandlerFunc
	text            tele.HandlerFunc
	observer        HandlerObserver
}

// NewRegistry returns an empty registry. Unknown callbacks are acknowledged
// silently until SetCallbackNotFound says otherwise.
func NewRegistry() *Registry {
	return &Registry{
		commands:        make(map[string]Command),
		callbacks:       make(map[string]tele.HandlerFunc),
		unknownCallback: func(c tele.Context) error { return c.Respond() },
	}
}

// RegisterCommand adds cmd under name, which must start with a slash.
func (r *Registry) RegisterCommand(name string, cmd Command) error {
	var err error
	switch {
	case len(name) < 2 || name[0] != '/':
		err = fmt.Errorf("%w: command %q needs a slash prefix", ErrRegistration, name)
	case cmd.Handler == nil || cmd.Description == "":
		err = fmt.Errorf("%w: command %s needs a handler and description", ErrRegistration, name)
	default:
		if _, dup := r.commands[name]; dup {
			err = fmt.Errorf("%w: command %s registered twice", ErrRegistration, name)
		}
	}
	if err != nil {
		logger.TWire.Warn("register.command", slog.String("name", name), slog.String("err", err.Error()))
		return err
	}
	r.commands[name] = cmd
	return nil
}

// RegisterCallback binds handler to a callback key.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) error {
	var err error
	switch {
	case key == "" || handler == nil:
		err = fmt.Errorf("%w: callback %q needs a key and handler", ErrRegistration, key)
	default:
		if _, dup := r.callbacks[key]; dup {
			err = fmt.Errorf("%w: callback %s registered twice", ErrRegistration, key)
		}
	}
	if err != nil {
		logger.TWire.Warn("register.callback", slog.String("key", key), slog.String("err", err.Error()))
		return err
	}
	r.callbacks[key] = handler
	return nil
}

// Commands returns the registered commands keyed by name.
func (r *Registry) Commands() map[string]Command {
	return r.commands
}

// BotCommands lists the commands for the Telegram menu, sorted by name.
func (r *Registry) BotCommands() []tele.Command {
	list := make([]tele.Command, 0, len(r.commands))
	for name, cmd := range r.commands {
		list = append(list, tele.Command{Text: name, Description: cmd.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand resolves the first word of text ("/menu@bot args") to a
// registered command name or alias.
func (r *Registry) LookupCommand(text string) (string, Command, bool) {
	name, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	name, _, _ = strings.Cut(name, "@")
	name = "/" + strings.TrimPrefix(name, "/")
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if "/"+strings.TrimPrefix(alias, "/") == name {
				return key, cmd, true
			}
		}
	}
	return "", Command{}, false
}

// Callback returns the handler bound to key.
func (r *Registry) Callback(key string) (tele.HandlerFunc, bool) {
	h, ok := r.callbacks[key]
	return h, ok
}

// CallbackKeys returns the registered callback keys, sorted.
func (r *Registry) CallbackKeys() []string {
	keys := make([]string, 0, len(r.callbacks))
	for k := range r.callbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetCallbackNotFound replaces the handler for presses with an unknown key.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h != nil {
		r.unknownCallback = h
	}
}

// CallbackNotFound returns the handler for presses with an unknown key.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	return r.unknownCallback
}

// SetTextFallback sets the handler for text that is not a command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.text = h
}

// TextFallback returns the handler for text that is not a command.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.text
}

// SetObserver attaches a handler observer (metrics).
func (r *Registry) SetObserver(o HandlerObserver) {
	r.observer = o
}

// Observe forwards a handled update to the observer, if any.
func (r *Registry) Observe(handler, outcome string) {
	if r == nil || r.observer == nil {
		return
	}
	r.observer.ObserveHandler(handler, outcome)
}

// publishCommands sets the command menu shown by Telegram clients.
func publishCommands(bot *tele.Bot, reg *Registry) {
	if err := bot.SetCommands(reg.BotCommands()); err != nil {
		logger.TWire.Error("commands.publish", slog.String("err", err.Error()))
	}
}
