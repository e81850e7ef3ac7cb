package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaultsToLongpoll(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: " abc "}}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "abc", cfg.Telegram.Token)
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "abc", RunMode: "Polling"}}
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeErrors(t *testing.T) {
	cases := map[string]*Config{
		"missing token":    {},
		"bad run mode":     {Telegram: TelegramConfig{Token: "abc", RunMode: "carrier-pigeon"}},
		"webhook sans url": {Telegram: TelegramConfig{Token: "abc", RunMode: RunModeWebhook}},
		"negative timeout": {Telegram: TelegramConfig{Token: "abc", LongPollTimeoutSeconds: -1}},
		"negative workers": {Telegram: TelegramConfig{Token: "abc"}, Sender: SenderConfig{Workers: -2}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Normalize(cfg))
		})
	}
	assert.Error(t, Normalize(nil))
}

func TestLoadOverlaysEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "telegram:\n  token: from-file\n  run_mode: longpoll\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
