package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	result Result
	calls  []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Fetch(_ context.Context, location string) Result {
	p.calls = append(p.calls, location)
	return p.result
}

type recordingStore struct {
	saved []Snapshot
	err   error
}

func (s *recordingStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snap)
	return nil
}

func (s *recordingStore) Recent(_ context.Context, location string) ([]Snapshot, error) {
	var out []Snapshot
	for _, snap := range s.saved {
		if LocationKey(snap.Location) == LocationKey(location) {
			out = append(out, snap)
		}
	}
	return out, nil
}

type countingRecorder map[Kind]int

func (c countingRecorder) ObserveFetch(_ string, kind Kind) { c[kind]++ }

func TestServiceLookupStoresSuccess(t *testing.T) {
	prov := &stubProvider{result: Result{Kind: OK, Report: Report{City: "Paris", Temperature: 18}}}
	st := &recordingStore{}
	rec := countingRecorder{}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	svc := NewService(prov, st, rec, zerolog.Nop())
	svc.now = func() time.Time { return fixed }

	res := svc.Lookup(context.Background(), "Paris")
	require.Equal(t, OK, res.Kind)
	assert.Equal(t, []string{"Paris"}, prov.calls)
	assert.Equal(t, 1, rec[OK])

	require.Len(t, st.saved, 1)
	assert.Equal(t, "Paris", st.saved[0].Location)
	assert.Equal(t, 18, st.saved[0].Report.Temperature)
	assert.Equal(t, time.UTC, st.saved[0].FetchedAt.Location())

	hist, err := svc.History(context.Background(), "  paris ")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestServiceLookupDoesNotStoreFailures(t *testing.T) {
	for _, res := range []Result{
		{Kind: Unavailable},
		{Kind: TransportError, Err: errors.New("dial tcp: refused")},
	} {
		prov := &stubProvider{result: res}
		st := &recordingStore{}
		rec := countingRecorder{}

		got := NewService(prov, st, rec, zerolog.Nop()).Lookup(context.Background(), "Nowhere")
		assert.Equal(t, res.Kind, got.Kind)
		assert.Empty(t, st.saved)
		assert.Equal(t, 1, rec[res.Kind])
	}
}

func TestServiceStoreFailureDoesNotFailLookup(t *testing.T) {
	prov := &stubProvider{result: Result{Kind: OK}}
	st := &recordingStore{err: errors.New("redis down")}

	res := NewService(prov, st, nil, zerolog.Nop()).Lookup(context.Background(), "Paris")
	assert.Equal(t, OK, res.Kind)
	assert.NoError(t, res.Error())
}

func TestServiceHistoryWithoutStore(t *testing.T) {
	svc := NewService(&stubProvider{}, nil, nil, zerolog.Nop())
	_, err := svc.History(context.Background(), "Paris")
	assert.Error(t, err)
}

func TestResultError(t *testing.T) {
	assert.NoError(t, Result{Kind: OK}.Error())
	assert.ErrorIs(t, Result{Kind: Unavailable}.Error(), ErrUnavailable)

	cause := errors.New("boom")
	assert.ErrorIs(t, Result{Kind: TransportError, Err: cause}.Error(), cause)
	assert.Error(t, Result{Kind: TransportError}.Error())
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "new york, us", LocationKey("  New   York,  US "))
	assert.Equal(t, LocationKey("Paris"), LocationKey("PARIS"))
}
