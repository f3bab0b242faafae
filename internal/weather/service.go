package weather

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var errNoStore = errors.New("history store not configured")

// Service performs lookups against the provider and keeps a history of successful ones.
type Service struct {
	provider Provider
	store    Store
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new Service. store and recorder may be nil.
func NewService(provider Provider, store Store, recorder Recorder, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		recorder: recorder,
		log:      log.With().Str("component", "weather").Logger(),
		now:      time.Now,
	}
}

// Lookup fetches and normalizes the current weather for location.
func (s *Service) Lookup(ctx context.Context, location string) Result {
	res := s.provider.Fetch(ctx, location)

	if s.recorder != nil {
		s.recorder.ObserveFetch(s.provider.Name(), res.Kind)
	}

	switch res.Kind {
	case OK:
		s.log.Debug().Str("location", location).Str("condition", res.Report.Condition).Msg("lookup succeeded")
		s.remember(ctx, location, res.Report)
	case Unavailable:
		s.log.Warn().Str("location", location).Msg("provider returned no data")
	default:
		s.log.Error().Err(res.Err).Str("location", location).Msg("provider fetch failed")
	}

	return res
}

func (s *Service) remember(ctx context.Context, location string, report Report) {
	if s.store == nil {
		return
	}
	snap := Snapshot{
		Location:  location,
		FetchedAt: s.now().UTC(),
		Report:    report,
	}
	// History is best effort; a failing store never fails the lookup.
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		s.log.Error().Err(err).Str("location", location).Msg("saving snapshot failed")
	}
}

// History returns recent successful lookups for location, oldest first.
func (s *Service) History(ctx context.Context, location string) ([]Snapshot, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.Recent(ctx, location)
}
