package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalizeAndEnabled(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.Enabled())

	cfg.Host = "db"
	cfg.Normalize()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxConnections)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
}

func TestConfigDSNAndURL(t *testing.T) {
	cfg := Config{Host: "db", Port: "5433", User: "bot", Password: "p@ss word", Name: "recipes", SSLMode: "require"}
	assert.Equal(t, "user=bot password='p@ss word' host=db port=5433 dbname=recipes sslmode=require", cfg.DSN())
	assert.Equal(t, "postgres://bot:p%40ss%20word@db:5433/recipes?sslmode=require", cfg.URL())
}

func TestRunMigrationsMissingDir(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Name: "recipes", MigrationsDir: filepath.Join(t.TempDir(), "missing")}
	err := RunMigrations(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init migrations")
}

func TestDialGivesUpWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	db, err := dial(ctx, "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1", 20*time.Millisecond)
	assert.Nil(t, db)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMigrateLogVerbosity(t *testing.T) {
	var l migrateLog
	assert.False(t, l.Verbose())
	l.Printf("1/u search_journal (%s)\n", "3ms")
}
