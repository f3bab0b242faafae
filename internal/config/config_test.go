package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "TOMORROW_API_KEY", "TOMORROW_BASE_URL", "HTTP_TIMEOUT", "SESSION_SECRET",
		"CITY_LIST_PATH", "SUGGESTION_LIMIT", "WARM_LOCATIONS", "WARM_INTERVAL", "REDIS_URL",
		"HISTORY_MAX_ENTRIES", "HISTORY_MAX_AGE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultTomorrowAPIKey, cfg.TomorrowAPIKey)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "city.list.json", cfg.CityListPath)
	assert.Equal(t, 10, cfg.SuggestionLimit)
	assert.Empty(t, cfg.WarmLocations)
	assert.Equal(t, 15*time.Minute, cfg.WarmInterval)
	assert.Equal(t, 50, cfg.HistoryMaxEntries)
	assert.Equal(t, 24*time.Hour, cfg.HistoryMaxAge)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOMORROW_API_KEY", "secret")
	t.Setenv("TOMORROW_BASE_URL", "http://localhost:9999/forecast")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("WARM_LOCATIONS", "Paris, FR; 48.85,2.35 ;;  ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SUGGESTION_LIMIT", "not-a-number")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "secret", cfg.TomorrowAPIKey)
	assert.Equal(t, "http://localhost:9999/forecast", cfg.TomorrowBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"Paris, FR", "48.85,2.35"}, cfg.WarmLocations)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 10, cfg.SuggestionLimit)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":     "soon",
		"WARM_INTERVAL":    "-1m",
		"PORT":             "http",
		"SUGGESTION_LIMIT": "500",
		"LOG_FORMAT":       "xml",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
