package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/recipebot/core/config"
	"github.com/m3rciful/recipebot/internal/bot"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", " secret ")
	t.Setenv("METRICS_LISTEN", ":9100")
	path := writeConfig(t, `
telegram:
  token: "123:abc"
recipes:
  equipment: "air fryer"
database:
  host: localhost
  name: recipebot
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, "secret", cfg.Recipes.APIKey)
	assert.Equal(t, bot.DefaultSearchLimit, cfg.Recipes.SearchLimit)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"missing token":      "recipes:\n  search_limit: 5\n",
		"negative limit":     "telegram:\n  token: x\nrecipes:\n  search_limit: -1\n",
		"database sans name": "telegram:\n  token: x\ndatabase:\n  host: db\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestNewWiresDemoBotWithoutInfrastructure(t *testing.T) {
	cfg := &Config{Config: coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "x"}}}
	require.NoError(t, cfg.Normalize())

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.True(t, a.demo)
	assert.Nil(t, a.metrics)
	assert.Empty(t, a.Services())
	assert.NoError(t, a.Close())

	assert.Contains(t, a.registry.Commands(), "/start")
	assert.Contains(t, a.registry.Commands(), "/help")
	assert.Contains(t, a.registry.Commands(), "/history")
	assert.ElementsMatch(t, []string{"main_menu", "recipes", "page", "recipe"}, a.registry.CallbackKeys())

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.Same(t, &cfg.Config, opts.Config)
	assert.Len(t, opts.Routes, 5)
	assert.Nil(t, opts.DispatcherOptions.OnFailure)
}

func TestNewWithMetricsExposesService(t *testing.T) {
	cfg := &Config{Config: coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "x"}}}
	cfg.Recipes.APIKey = "key"
	cfg.Metrics.Listen = "127.0.0.1:0"
	require.NoError(t, cfg.Normalize())

	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.False(t, a.demo)
	require.NotNil(t, a.metrics)

	services := a.Services()
	require.Len(t, services, 1)
	assert.Equal(t, "metrics", services[0].Name)

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	assert.NotNil(t, opts.DispatcherOptions.OnFailure)
}

func TestNewWithDatabaseRunsJournal(t *testing.T) {
	cfg := &Config{Config: coreconfig.Config{Telegram: coreconfig.TelegramConfig{Token: "x"}}}
	require.NoError(t, cfg.Normalize())

	// sqlx.Open does not dial, so no server is needed.
	db, err := sqlx.Open("postgres", "host=127.0.0.1 port=1 dbname=x sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a, err := New(cfg, db)
	require.NoError(t, err)
	require.NotNil(t, a.journal)

	services := a.Services()
	require.Len(t, services, 1)
	assert.Equal(t, "journal", services[0].Name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, services[0].Run(ctx))
}
