// Package callbacks parses raw inline button payloads of the form "<key>" or "<key>_<n>".
//
// Buttons are built without a telebot unique so the payload reaches the bot
// byte-for-byte as it was sent, and every press is routed through tele.OnCallback.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Split separates a raw payload into its key and numeric argument.
// The argument is the suffix after the last underscore when that suffix is all
// digits; otherwise the whole payload is the key and arg is empty.
func Split(data string) (key, arg string) {
	data = strings.TrimSpace(data)
	i := strings.LastIndexByte(data, '_')
	if i <= 0 || i == len(data)-1 {
		return data, ""
	}
	suffix := data[i+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return data, ""
		}
	}
	return data[:i], suffix
}

// Join builds a "<key>_<arg>" payload.
func Join(key, arg string) string {
	if arg == "" {
		return key
	}
	return key + "_" + arg
}

// Data returns the raw callback payload of the current update.
func Data(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return Join(cb.Unique, cb.Data)
	}
	return strings.TrimPrefix(cb.Data, "\f")
}

// Key returns the registry key of the current callback.
func Key(c tele.Context) string {
	k, _ := Split(Data(c))
	return k
}
