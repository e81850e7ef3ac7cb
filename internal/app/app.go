// Package app wires configuration, infrastructure and the recipe bot together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/recipebot/core/bootstrap"
	corecmd "github.com/m3rciful/recipebot/core/cmd"
	"github.com/m3rciful/recipebot/core/logger"
	"github.com/m3rciful/recipebot/core/metrics"
	tg "github.com/m3rciful/recipebot/core/telegram"
	"github.com/m3rciful/recipebot/core/telegram/router"
	tgsender "github.com/m3rciful/recipebot/core/telegram/sender"
	"github.com/m3rciful/recipebot/internal/bot"
	"github.com/m3rciful/recipebot/internal/journal"
	"github.com/m3rciful/recipebot/internal/recipes"
	"github.com/m3rciful/recipebot/internal/session"
)

// App holds the wired bot.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	metrics  *metrics.Metrics
	journal  *journal.Postgres
	registry *tg.Registry
	demo     bool
}

// Bootstrap initializes logging and the optional database, then wires the bot.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	infra, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}
	a, err := New(cfg, infra.DB)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	a.infra = infra
	return a, nil
}

// New wires the bot on top of already initialized infrastructure. db may be nil.
func New(cfg *Config, db *sqlx.DB) (*App, error) {
	a := &App{cfg: cfg, registry: tg.NewRegistry()}

	if cfg.Metrics.Listen != "" {
		m, err := metrics.New()
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.metrics = m
		a.registry.SetObserver(m)
	}

	var (
		rec  journal.Recorder = journal.Nop{}
		hist journal.Reader   = journal.Nop{}
	)
	if db != nil {
		a.journal = journal.NewPostgres(db)
		rec, hist = a.journal, a.journal
	}

	a.demo = cfg.Recipes.APIKey == ""
	var obs recipes.Observer
	if a.metrics != nil {
		obs = a.metrics
	}
	source := recipes.New(recipes.Config{
		APIKey:    cfg.Recipes.APIKey,
		BaseURL:   cfg.Recipes.BaseURL,
		Equipment: cfg.Recipes.Equipment,
		Timeout:   time.Duration(cfg.Recipes.TimeoutSeconds) * time.Second,
	}, obs)

	ctrl, err := bot.NewController(bot.Options{
		Source:      source,
		Store:       session.NewMemoryStore(),
		Journal:     rec,
		History:     hist,
		SearchLimit: cfg.Recipes.SearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := bot.Register(a.registry, ctrl); err != nil {
		return nil, fmt.Errorf("app: register handlers: %w", err)
	}
	return a, nil
}

// TelegramRunOptions builds the runtime options for the bot.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.registry)
	routes = append(routes, router.TextRoutes(a.registry)...)
	routes = append(routes, router.CallbackRoute(a.registry))

	opts := tg.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			mode := "api"
			if a.demo {
				mode = "demo"
			}
			logger.Info(ctx, "recipes", "source",
				slog.String("mode", mode),
				slog.Int("search_limit", a.cfg.Recipes.SearchLimit),
			)
			return nil
		},
	}
	if a.metrics != nil {
		opts.DispatcherOptions = tgsender.Options{OnFailure: a.metrics.ObserveSendFailure}
	}
	return opts, nil
}

// Services returns the background services started next to the bot.
func (a *App) Services() []corecmd.Service {
	var services []corecmd.Service
	if a.metrics != nil {
		services = append(services, corecmd.Service{
			Name: "metrics",
			Run: func(ctx context.Context) error {
				return a.metrics.Serve(ctx, a.cfg.Metrics.Listen)
			},
		})
	}
	if a.journal != nil {
		services = append(services, corecmd.Service{Name: "journal", Run: a.journal.Run})
	}
	return services
}

// Close releases infrastructure acquired by Bootstrap.
func (a *App) Close() error {
	return a.infra.Close()
}
