package weather

import (
	"context"
	"errors"
)

// ErrUnavailable is reported when the provider answered with a non-success status.
var ErrUnavailable = errors.New("weather data unavailable")

// Kind classifies the outcome of a provider fetch.
type Kind int

const (
	// OK means Report holds normalized data.
	OK Kind = iota
	// Unavailable means the provider answered with a non-200 status.
	Unavailable
	// TransportError means the request or decoding failed; Err holds the cause.
	TransportError
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Unavailable:
		return "unavailable"
	case TransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single fetch.
type Result struct {
	Kind   Kind
	Report Report
	Err    error
}

// Error returns nil on success, ErrUnavailable for an unavailable result and the
// transport error otherwise.
func (r Result) Error() error {
	switch r.Kind {
	case OK:
		return nil
	case Unavailable:
		return ErrUnavailable
	default:
		if r.Err == nil {
			return errors.New("weather transport error")
		}
		return r.Err
	}
}

// Provider abstracts a weather data source queried by a free-form location string
// (place name or "lat,lon").
type Provider interface {
	Name() string
	Fetch(ctx context.Context, location string) Result
}

// Store keeps recent successful lookups per location.
type Store interface {
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	Recent(ctx context.Context, location string) ([]Snapshot, error)
}

// Recorder receives lookup outcomes, e.g. for metrics.
type Recorder interface {
	ObserveFetch(provider string, kind Kind)
}
