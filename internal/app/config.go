package app

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/recipebot/core/config"
	coredatabase "github.com/m3rciful/recipebot/core/database"
	"github.com/m3rciful/recipebot/internal/bot"
)

// RecipesConfig configures the Spoonacular source. An empty APIKey selects demo data.
type RecipesConfig struct {
	APIKey         string `yaml:"api_key" envconfig:"SPOONACULAR_API_KEY"`
	BaseURL        string `yaml:"base_url" envconfig:"SPOONACULAR_BASE_URL"`
	Equipment      string `yaml:"equipment"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// SearchLimit caps free-text search results.
	SearchLimit int `yaml:"search_limit"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Recipes  RecipesConfig       `yaml:"recipes"`
	Database coredatabase.Config `yaml:"database"`
	Metrics  MetricsConfig       `yaml:"metrics"`
}

// CoreConfig exposes the embedded core section.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// Load reads path, overlays environment variables and applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.ReadInto(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the configuration and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}

	c.Recipes.APIKey = strings.TrimSpace(c.Recipes.APIKey)
	if c.Recipes.TimeoutSeconds < 0 {
		return fmt.Errorf("recipes.timeout_seconds must be >= 0")
	}
	if c.Recipes.SearchLimit < 0 {
		return fmt.Errorf("recipes.search_limit must be >= 0")
	}
	if c.Recipes.SearchLimit == 0 {
		c.Recipes.SearchLimit = bot.DefaultSearchLimit
	}

	if c.Database.Enabled() {
		c.Database.Normalize()
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required when database.host is set")
		}
	}
	c.Metrics.Listen = strings.TrimSpace(c.Metrics.Listen)
	return nil
}
