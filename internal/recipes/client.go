package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/recipebot/core/httpclient"
	"github.com/m3rciful/recipebot/core/logger"
)

const (
	// DefaultBaseURL is the Spoonacular recipes endpoint.
	DefaultBaseURL = "https://api.spoonacular.com/recipes"
	// DefaultEquipment restricts searches to air fryer recipes.
	DefaultEquipment = "air fryer"

	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 256
)

// Config configures the Spoonacular client.
type Config struct {
	APIKey    string
	BaseURL   string
	Equipment string
	Timeout   time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks to the Spoonacular API. Calls are not retried.
type Client struct {
	apiKey    string
	baseURL   string
	equipment string
	http      *http.Client
	obs       Observer
}

// NewClient builds a Spoonacular client, filling defaults for empty fields.
func NewClient(cfg Config, obs Observer) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	equipment := cfg.Equipment
	if equipment == "" {
		equipment = DefaultEquipment
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = httpclient.New(httpclient.Options{Timeout: timeout, ResponseTimeout: timeout})
	}
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   base,
		equipment: equipment,
		http:      client,
		obs:       obs,
	}
}

type searchResponse struct {
	Results []Summary `json:"results"`
}

type detailResponse struct {
	Title               string `json:"title"`
	Image               string `json:"image"`
	Summary             string `json:"summary"`
	Instructions        string `json:"instructions"`
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
}

// Search runs complexSearch with the given filters.
func (c *Client) Search(ctx context.Context, params SearchParams) []Summary {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("number", strconv.Itoa(params.number()))
	q.Set("instructionsRequired", "true")
	q.Set("equipment", c.equipment)
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if params.Cuisine != "" {
		q.Set("cuisine", params.Cuisine)
	}
	if params.Diet != "" {
		q.Set("diet", params.Diet)
	}
	if params.MaxReadyTime > 0 {
		q.Set("maxReadyTime", strconv.Itoa(params.MaxReadyTime))
	}

	var resp searchResponse
	attrs := []slog.Attr{
		slog.String("query", logger.SanitizeLimit(params.Query, 64)),
		slog.String("diet", params.Diet),
		slog.String("cuisine", params.Cuisine),
		slog.Int("max_ready_time", params.MaxReadyTime),
	}
	if err := c.get(ctx, "search", c.baseURL+"/complexSearch", q, &resp, attrs...); err != nil {
		return []Summary{}
	}
	if resp.Results == nil {
		resp.Results = []Summary{}
	}
	if c.obs != nil {
		c.obs.ObserveSearchResults(len(resp.Results))
	}
	logger.Debug(ctx, "recipes", "search.done", append(attrs, slog.Int("results", len(resp.Results)))...)
	return resp.Results
}

// Detail fetches recipe information without nutrition data.
func (c *Client) Detail(ctx context.Context, id int64) (Detail, bool) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("includeNutrition", "false")

	var resp detailResponse
	endpoint := fmt.Sprintf("%s/%d/information", c.baseURL, id)
	if err := c.get(ctx, "detail", endpoint, q, &resp, slog.Int64("recipe_id", id)); err != nil {
		return Detail{}, false
	}

	d := Detail{
		Title:        resp.Title,
		Image:        resp.Image,
		Summary:      resp.Summary,
		Instructions: resp.Instructions,
		Ingredients:  make([]string, 0, len(resp.ExtendedIngredients)),
	}
	for _, ing := range resp.ExtendedIngredients {
		d.Ingredients = append(d.Ingredients, ing.Original)
	}
	if strings.TrimSpace(d.Title) == "" {
		if len(d.Ingredients) == 0 && strings.TrimSpace(d.Summary+d.Instructions) == "" {
			logger.Warn(ctx, "recipes", "detail.empty", slog.Int64("recipe_id", id))
			return Detail{}, false
		}
		d.Title = fmt.Sprintf("Recipe #%d", id)
	}
	return d, true
}

// get performs one GET and decodes a JSON body into out. Every failure is logged here.
func (c *Client) get(ctx context.Context, operation, endpoint string, q url.Values, out any, attrs ...slog.Attr) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		took := time.Since(start)
		if c.obs != nil {
			c.obs.ObserveAPI(operation, logger.Status(err), took)
		}
		if err == nil {
			return
		}
		fields := append([]slog.Attr{
			slog.String("operation", operation),
			slog.String("status", "fail"),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", logger.SanitizeLimit(err.Error(), maxErrorBodyLen)),
		}, attrs...)
		if status != 0 {
			fields = append(fields, slog.Int("http_code", status))
		}
		logger.Error(ctx, "recipes", operation+".fail", fields...)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("recipes: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("recipes: %s request: %w", operation, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return fmt.Errorf("recipes: %s status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("recipes: decode %s response: %w", operation, err)
	}
	return nil
}

// redactKey keeps the API key out of logged transport errors, which embed the request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "<redacted>"))
}
