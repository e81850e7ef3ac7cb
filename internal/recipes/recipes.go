// Package recipes fetches air fryer recipes from the Spoonacular API, or from
// a fixed demo dataset when no API key is configured.
package recipes

import (
	"context"
	"time"
)

// Summary is one search hit.
type Summary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// Detail is the full view of a single recipe.
// Summary may contain HTML markup; Instructions may be empty.
type Detail struct {
	Title        string
	Image        string
	Summary      string
	Ingredients  []string
	Instructions string
}

// SearchParams narrows a search. Zero values are omitted from the request.
type SearchParams struct {
	Query        string
	Number       int
	Cuisine      string
	Diet         string
	MaxReadyTime int
}

// DefaultNumber is used when SearchParams.Number is not positive.
const DefaultNumber = 10

func (p SearchParams) number() int {
	if p.Number <= 0 {
		return DefaultNumber
	}
	return p.Number
}

// Source is a read-only recipe provider. Failures are logged by the
// implementation and surface as empty results, never as errors.
type Source interface {
	Search(ctx context.Context, params SearchParams) []Summary
	// Detail returns false when the recipe could not be fetched.
	Detail(ctx context.Context, id int64) (Detail, bool)
}

// Observer receives API call measurements (metrics).
type Observer interface {
	ObserveAPI(operation, outcome string, took time.Duration)
	ObserveSearchResults(n int)
}

// New returns the HTTP client when cfg carries an API key and the demo source otherwise.
func New(cfg Config, obs Observer) Source {
	if cfg.APIKey == "" {
		return Demo{}
	}
	return NewClient(cfg, obs)
}
