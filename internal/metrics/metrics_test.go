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

	"github.com/i474232898/weathertracker/internal/weather"
)

func TestObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch("tomorrow.io", weather.OK)
	m.ObserveFetch("tomorrow.io", weather.OK)
	m.ObserveFetch("tomorrow.io", weather.Unavailable)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerFetchTotal.WithLabelValues("tomorrow.io", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerFetchTotal.WithLabelValues("tomorrow.io", "unavailable")))
}

func TestObserveSuggestionsAndRequests(t *testing.T) {
	m := New()
	m.ObserveSuggestions(3)
	m.ObserveRequest(http.MethodGet, "/weather", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.suggestionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/weather", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveFetch("tomorrow.io", weather.TransportError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `weather_provider_fetch_total{outcome="transport_error",provider="tomorrow.io"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
