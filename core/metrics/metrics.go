// Package metrics exports bot and recipe API metrics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m3rciful/recipebot/core/logger"
)

const namespace = "recipebot"

// Metrics groups the collectors used across the bot. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests   *prometheus.CounterVec
	apiDuration   *prometheus.HistogramVec
	searchResults prometheus.Histogram
	updates       *prometheus.CounterVec
	sendFailures  prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recipes_api",
			Name:      "requests_total",
			Help:      "Recipe API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recipes_api",
			Name:      "request_duration_seconds",
			Help:      "Latency of recipe API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recipes_api",
			Name:      "search_results",
			Help:      "Number of recipes returned per search.",
			Buckets:   []float64{0, 1, 3, 5, 10, 15},
		}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "updates_handled_total",
			Help:      "Handled Telegram updates by handler and outcome.",
		}, []string{"handler", "outcome"}),
		sendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "send_failures_total",
			Help:      "Outbound Telegram calls that failed after retries.",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiDuration,
		m.searchResults,
		m.updates,
		m.sendFailures,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return m, nil
}

// ObserveAPI records one recipe API call.
func (m *Metrics) ObserveAPI(operation, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(operation, outcome).Inc()
	m.apiDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveSearchResults records the size of a search result set.
func (m *Metrics) ObserveSearchResults(n int) {
	if m == nil {
		return
	}
	m.searchResults.Observe(float64(n))
}

// ObserveHandler records one handled update.
func (m *Metrics) ObserveHandler(handler, outcome string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(handler, outcome).Inc()
}

// ObserveSendFailure counts an outbound message that could not be delivered.
func (m *Metrics) ObserveSendFailure() {
	if m == nil {
		return
	}
	m.sendFailures.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics endpoint on listen until ctx is done.
func (m *Metrics) Serve(ctx context.Context, listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Metrics.Info("metrics.listen", slog.String("listen", listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: listen %s: %w", listen, err)
	}
}
