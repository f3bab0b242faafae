package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weathertracker/internal/config"
	"github.com/i474232898/weathertracker/internal/store"
	"github.com/i474232898/weathertracker/internal/weather"
)

func testConfig(t *testing.T, baseURL string) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		Port:              "0",
		TomorrowAPIKey:    "k",
		TomorrowBaseURL:   baseURL,
		HTTPTimeout:       2 * time.Second,
		CityListPath:      filepath.Join(t.TempDir(), "missing.json"),
		SuggestionLimit:   10,
		WarmInterval:      time.Hour,
		HistoryMaxEntries: 5,
		HistoryMaxAge:     time.Hour,
		LogLevel:          "error",
		LogFormat:         "json",
	}
}

func run(t *testing.T, cfg *config.AppConfig, args ...string) (string, error) {
	t.Helper()
	cmd := New(func() (*config.AppConfig, error) { return cfg, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLookupCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("location") != "Paris" {
			http.Error(w, "unknown location", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"timelines":{"minutely":[{"values":{"temperature":18.2,"weatherCode":1001,"epaIndex":301}}]},"location":{"name":"Paris"}}`))
	}))
	defer srv.Close()

	out, err := run(t, testConfig(t, srv.URL), "lookup", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCATION\t Paris\n")
	assert.Contains(t, out, "CONDITION\t Cloudy")
	assert.Contains(t, out, "TEMP\t\t 18°C")
	assert.Contains(t, out, "AIR QUALITY\t Hazardous (301)")

	_, err = run(t, testConfig(t, srv.URL), "lookup", "Atlantis")
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, testConfig(t, "http://127.0.0.1:1"), "suggest", "san", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "San Antonio\nSan Diego\n", out)
}

func TestBuildWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.RedisURL = "redis://" + mr.Addr()

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Weather.History(context.Background(), "Paris")
	assert.ErrorIs(t, err, store.ErrNotFound)

	cfg.RedisURL = "redis://127.0.0.1:1"
	_, err = Build(context.Background(), cfg)
	assert.Error(t, err)
}
