package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCounters(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.ObserveAPI("search", "ok", 120*time.Millisecond)
	m.ObserveAPI("search", "ok", 80*time.Millisecond)
	m.ObserveAPI("detail", "fail", time.Second)
	m.ObserveHandler("callback.page", "ok")
	m.ObserveSendFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("search", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.apiRequests.WithLabelValues("detail", "fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.updates.WithLabelValues("callback.page", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sendFailures))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAPI("search", "ok", time.Millisecond)
		m.ObserveSearchResults(3)
		m.ObserveHandler("start", "ok")
		m.ObserveSendFailure()
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.ObserveSearchResults(5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "recipebot_recipes_api_search_results_count 1"))
}
