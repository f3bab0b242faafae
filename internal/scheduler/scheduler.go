package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/i474232898/weathertracker/internal/weather"
)

// Looker is the part of weather.Service the scheduler drives.
type Looker interface {
	Lookup(ctx context.Context, location string) weather.Result
}

// Scheduler periodically looks up the configured locations so their history stays current.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Looker
	locations []string
	interval  time.Duration
	timeout   time.Duration
	log       zerolog.Logger
}

// New creates a new Scheduler.
func New(locations []string, interval time.Duration, service Looker, log zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		timeout:   30 * time.Second,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The first run
// happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.log.Info().Msg("no warm-up locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval < time.Minute {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info().Int("locations", len(s.locations)).Dur("interval", interval).Msg("warm-up job scheduled")
	return nil
}

// RunOnce looks up every configured location concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.log.Debug().Msg("running warm-up job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if res := s.service.Lookup(ctx, loc); res.Kind != weather.OK {
				s.log.Warn().Str("location", loc).Str("outcome", res.Kind.String()).Msg("warm-up lookup failed")
			}
		}(loc)
	}
	wg.Wait()

	s.log.Debug().Msg("completed warm-up job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
