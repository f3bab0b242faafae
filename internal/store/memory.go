package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weathertracker/internal/weather"
)

var (
	// ErrNotFound is returned when no history is available for a given location.
	ErrNotFound = errors.New("no weather history for location")
)

// MemoryStore is a concurrency-safe in-memory implementation of the lookup history.
type MemoryStore struct {
	mu sync.RWMutex

	// key: weather.LocationKey, value: snapshots ordered oldest first
	data map[string][]weather.Snapshot

	// retention configuration
	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]weather.Snapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a new snapshot for its location and enforces retention.
func (s *MemoryStore) SaveSnapshot(_ context.Context, snapshot weather.Snapshot) error {
	key := weather.LocationKey(snapshot.Location)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[key], snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	s.data[key] = s.pruneLocked(history)
	return nil
}

// pruneLocked drops snapshots older than maxAge. Caller holds s.mu.
func (s *MemoryStore) pruneLocked(history []weather.Snapshot) []weather.Snapshot {
	if s.maxAge <= 0 {
		return history
	}
	cutoff := s.now().Add(-s.maxAge)
	i := 0
	for ; i < len(history); i++ {
		if !history[i].FetchedAt.Before(cutoff) {
			break
		}
	}
	return history[i:]
}

// Recent returns the retained snapshots for a location, oldest first.
func (s *MemoryStore) Recent(_ context.Context, location string) ([]weather.Snapshot, error) {
	key := weather.LocationKey(location)

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[key]
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		for len(history) > 0 && history[0].FetchedAt.Before(cutoff) {
			history = history[1:]
		}
	}
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	out := make([]weather.Snapshot, len(history))
	copy(out, history)
	return out, nil
}
