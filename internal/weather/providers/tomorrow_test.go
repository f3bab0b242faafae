package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weathertracker/internal/weather"
)

const forecastBody = `{
  "timelines": {
    "minutely": [{"time": "2024-05-01T10:00:00Z", "values": {
      "temperature": 21.6, "weatherCode": 1100, "windSpeed": 3.4,
      "humidity": 55, "visibility": 16, "uvIndex": 4, "epaIndex": 75
    }}],
    "daily": [{"time": "2024-05-01T00:00:00Z", "values": {"temperatureMax": 24.4, "temperatureMin": 12.7}}]
  },
  "location": {"lat": 48.85, "lon": 2.35, "name": "Paris, Ile-de-France, France"}
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *TomorrowProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTomorrowProvider(srv.Client(), "test-key", srv.URL, zerolog.Nop())
}

func TestTomorrowFetchOK(t *testing.T) {
	var query map[string]string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"location": r.URL.Query().Get("location"),
			"apikey":   r.URL.Query().Get("apikey"),
			"units":    r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	})

	res := p.Fetch(context.Background(), "Paris")
	require.Equal(t, weather.OK, res.Kind)
	require.NoError(t, res.Error())

	assert.Equal(t, map[string]string{"location": "Paris", "apikey": "test-key", "units": "metric"}, query)
	assert.Equal(t, 22, res.Report.Temperature)
	assert.Equal(t, "Mostly Clear", res.Report.Condition)
	assert.Equal(t, "fas fa-cloud-sun", res.Report.Icon)
	assert.Equal(t, "Moderate", res.Report.AQI)
	assert.Equal(t, 24, res.Report.High)
	assert.Equal(t, 13, res.Report.Low)
	assert.Equal(t, "Paris, Ile-de-France, France", res.Report.City)
}

func TestTomorrowFetchNonOKIsUnavailable(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway} {
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"code":400001,"message":"nope"}`, status)
		})

		res := p.Fetch(context.Background(), "Atlantis")
		assert.Equal(t, weather.Unavailable, res.Kind, "status %d", status)
		assert.ErrorIs(t, res.Error(), weather.ErrUnavailable)
	}
}

func TestTomorrowFetchBadBodyIsTransportError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	res := p.Fetch(context.Background(), "Paris")
	assert.Equal(t, weather.TransportError, res.Kind)
	assert.ErrorContains(t, res.Err, "decode tomorrow.io response")
}

func TestTomorrowFetchConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewTomorrowProvider(http.DefaultClient, "k", url, zerolog.Nop())
	res := p.Fetch(context.Background(), "Paris")
	assert.Equal(t, weather.TransportError, res.Kind)
	assert.Error(t, res.Error())
}

func TestTomorrowFetchCanceledContext(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(forecastBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Fetch(ctx, "Paris")
	assert.Equal(t, weather.TransportError, res.Kind)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
