package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m3rciful/recipebot/core/logger"
)

// RunMigrations applies every pending up migration found in cfg.MigrationsDir.
func RunMigrations(cfg Config) error {
	cfg.Normalize()
	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.URL())
	if err != nil {
		logger.MIG.Error("db.migrate", slog.String("path", dir), slog.String("err", err.Error()))
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	m.Log = migrateLog{}

	from := schemaVersion(m)
	start := time.Now()
	upErr := m.Up()
	took := time.Since(start)
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		logger.MIG.Error("db.migrate",
			slog.Uint64("from_ver", from),
			slog.Duration("took", took),
			slog.String("err", upErr.Error()),
		)
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	logger.MIG.Info("db.migrate",
		slog.Uint64("from_ver", from),
		slog.Uint64("to_ver", schemaVersion(m)),
		slog.Bool("changed", upErr == nil),
		slog.Duration("took", took),
	)
	return nil
}

// schemaVersion is 0 for a database no migration has touched yet.
func schemaVersion(m *migrate.Migrate) uint64 {
	v, _, err := m.Version()
	if err != nil {
		return 0
	}
	return uint64(v)
}

// migrateLog routes golang-migrate's per-file output to the migration logger.
type migrateLog struct{}

func (migrateLog) Printf(format string, v ...any) {
	logger.MIG.Debug("db.migrate.step", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, v...))))
}

func (migrateLog) Verbose() bool {
	return logger.MIG.Enabled(context.Background(), slog.LevelDebug)
}
