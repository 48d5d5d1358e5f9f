package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-hail-client/internal/domain/geo"
)

// scriptedSource returns queued results, for driving the cache.
type scriptedSource struct {
	fixes []Fix
	errs  []error
	calls int
}

func (s *scriptedSource) Current(ctx context.Context) (Fix, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Fix{}, s.errs[i]
	}
	if i < len(s.fixes) {
		return s.fixes[i], nil
	}
	return Fix{}, ErrNoFix
}

func TestCachedServesFreshFixWithoutReacquiring(t *testing.T) {
	now := time.Now()
	src := &scriptedSource{fixes: []Fix{{Point: geo.Point{Lat: 1, Lng: 2}, AcquiredAt: now}}}
	c := NewCached(src, time.Second, time.Minute)
	c.now = func() time.Time { return now }

	f1, err := c.Current(context.Background())
	require.NoError(t, err)
	f2, err := c.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Equal(t, 1, src.calls, "second read must come from the cache")
}

func TestCachedReacquiresWhenStale(t *testing.T) {
	now := time.Now()
	src := &scriptedSource{fixes: []Fix{
		{Point: geo.Point{Lat: 1, Lng: 2}, AcquiredAt: now.Add(-2 * time.Minute)},
		{Point: geo.Point{Lat: 3, Lng: 4}, AcquiredAt: now},
	}}
	c := NewCached(src, time.Second, time.Minute)
	c.now = func() time.Time { return now }

	// the first fix is already older than the max age when it lands, so the
	// next read goes back to the source
	_, err := c.Current(context.Background())
	require.NoError(t, err)
	f, err := c.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.0, f.Point.Lat)
	assert.Equal(t, 2, src.calls)
}

func TestCachedFailSoftOnAcquireError(t *testing.T) {
	now := time.Now()
	src := &scriptedSource{
		fixes: []Fix{{Point: geo.Point{Lat: 1, Lng: 2}, AcquiredAt: now.Add(-2 * time.Hour)}, {}},
		errs:  []error{nil, errors.New("gps down")},
	}
	c := NewCached(src, time.Second, time.Minute)
	c.now = func() time.Time { return now }

	// first read fills the cache with an already-ancient fix
	_, err := c.Current(context.Background())
	require.NoError(t, err)

	// the fix is stale so the next read reacquires; acquisition fails and the
	// last known fix is served anyway
	f, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.Point.Lat)
	assert.Equal(t, 2, src.calls)
}

func TestCachedErrorWhenNothingToServe(t *testing.T) {
	src := &scriptedSource{errs: []error{errors.New("gps down")}}
	c := NewCached(src, time.Second, time.Minute)

	_, err := c.Current(context.Background())
	assert.Error(t, err)
}

func TestSimulatedStaysInRange(t *testing.T) {
	s := NewSimulated(geo.Point{Lat: 12.9716, Lng: 77.5946})
	for i := 0; i < 500; i++ {
		f, err := s.Current(context.Background())
		require.NoError(t, err)
		require.NoError(t, f.Point.Validate())
		assert.False(t, f.AcquiredAt.IsZero())
	}
}
