package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTomorrowAPIKey is used when TOMORROW_API_KEY is unset. It is a demo key with a
// very small quota; set your own for anything beyond local testing.
const DefaultTomorrowAPIKey = "tomorrow-demo-key"

type AppConfig struct {
	Port string `validate:"required,numeric"`

	TomorrowAPIKey  string `validate:"required"`
	TomorrowBaseURL string `validate:"omitempty,url"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// SessionSecret is loaded but currently unused; the server holds no sessions.
	SessionSecret string

	CityListPath    string `validate:"required"`
	SuggestionLimit int    `validate:"min=1,max=100"`

	// WarmLocations are fetched periodically so their history stays fresh.
	WarmLocations []string
	WarmInterval  time.Duration `validate:"gt=0"`

	// History retention. REDIS_URL switches the history store from memory to Redis.
	RedisURL          string `validate:"omitempty,url"`
	HistoryMaxEntries int    // max snapshots per location (0 = unlimited)
	HistoryMaxAge     time.Duration

	LogLevel  string
	LogFormat string `validate:"omitempty,oneof=json console"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// A .env file, if wanted, must be loaded by the caller before calling Load.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.TomorrowAPIKey = getenvDefault("TOMORROW_API_KEY", DefaultTomorrowAPIKey)
	cfg.TomorrowBaseURL = os.Getenv("TOMORROW_BASE_URL")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.CityListPath = getenvDefault("CITY_LIST_PATH", "city.list.json")
	cfg.SuggestionLimit = getenvInt("SUGGESTION_LIMIT", 10)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.HistoryMaxEntries = getenvInt("HISTORY_MAX_ENTRIES", 50)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "console")
	cfg.WarmLocations = splitLocations(os.Getenv("WARM_LOCATIONS"))

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HistoryMaxAge, err = getenvDuration("HISTORY_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// splitLocations parses a ';'-separated list. Locations themselves may contain commas
// ("Paris, FR" or "48.85,2.35").
func splitLocations(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
