package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weathertracker/internal/weather"
)

// DefaultTomorrowURL is the Tomorrow.io forecast endpoint.
const DefaultTomorrowURL = "https://api.tomorrow.io/v4/weather/forecast"

// TomorrowProvider implements the weather.Provider interface for Tomorrow.io.
type TomorrowProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

func NewTomorrowProvider(client *http.Client, apiKey, baseURL string, log zerolog.Logger) *TomorrowProvider {
	if baseURL == "" {
		baseURL = DefaultTomorrowURL
	}
	log = log.With().Str("provider", "tomorrow.io").Logger()

	if client == nil {
		client = http.DefaultClient
	}
	rc := resty.NewWithClient(client).SetLogger(restyLogger{log: log})

	return &TomorrowProvider{
		name:    "tomorrow.io",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  rc,
		circuit: newCircuitBreaker("tomorrow.io", log),
		log:     log,
	}
}

func (p *TomorrowProvider) Name() string {
	return p.name
}

// Fetch queries the forecast endpoint for location, which may be a place name or "lat,lon".
func (p *TomorrowProvider) Fetch(ctx context.Context, location string) weather.Result {
	resp, err := doRequest(ctx, p.circuit, func(ctx context.Context) (*resty.Response, error) {
		return p.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"location": location,
				"apikey":   p.apiKey,
				"units":    "metric",
			}).
			Get(p.baseURL)
	})
	if err != nil {
		return weather.Result{Kind: weather.TransportError, Err: fmt.Errorf("tomorrow.io request: %w", err)}
	}

	if resp.StatusCode() != http.StatusOK {
		p.log.Error().
			Int("status", resp.StatusCode()).
			Str("body", truncate(resp.String(), 512)).
			Msg("api request failed")
		return weather.Result{Kind: weather.Unavailable}
	}

	var raw weather.RawResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return weather.Result{Kind: weather.TransportError, Err: fmt.Errorf("decode tomorrow.io response: %w", err)}
	}

	return weather.Result{Kind: weather.OK, Report: weather.Normalize(raw, location)}
}
