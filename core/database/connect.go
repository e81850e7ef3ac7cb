package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m3rciful/recipebot/core/logger"
)

const (
	connectTimeout = 30 * time.Second
	connectRetry   = 2 * time.Second
)

// Connect opens a pooled postgres handle. A server that is still starting is
// retried until connectTimeout elapses.
func Connect(cfg Config) (*sqlx.DB, error) {
	cfg.Normalize()
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	start := time.Now()
	db, err := dial(ctx, cfg.DSN(), connectRetry)
	attrs := []any{
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("db", cfg.Name),
		slog.Duration("took", time.Since(start)),
	}
	if err != nil {
		logger.DB.Error("db.connect", append(attrs, slog.String("err", err.Error()))...)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)
	logger.DB.Info("db.connect", append(attrs, slog.Int("pool_open", cfg.MaxConnections))...)
	return db, nil
}

// dial calls sqlx.ConnectContext (open plus ping) every interval until it
// succeeds or ctx is done.
func dial(ctx context.Context, dsn string, interval time.Duration) (*sqlx.DB, error) {
	for attempt := 1; ; attempt++ {
		db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
		if err == nil {
			return db, nil
		}
		logger.DB.Debug("db.connect.retry", slog.Int("attempt", attempt), slog.String("err", err.Error()))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ctx.Err(), err)
		case <-time.After(interval):
		}
	}
}
