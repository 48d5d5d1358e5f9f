// Package location supplies the driver agent with position fixes.
package location

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"ride-hail-client/internal/domain/geo"
)

// Fix is one position reading.
type Fix struct {
	Point      geo.Point
	AcquiredAt time.Time
}

// Source produces position fixes. Implementations may block up to the
// context deadline while acquiring a reading.
type Source interface {
	Current(ctx context.Context) (Fix, error)
}

var ErrNoFix = errors.New("location: no fix available")

// Cached wraps a Source with a freshness window: a recent fix is served
// without touching the underlying source, and acquisition is bounded by a
// timeout. On acquisition failure the last known fix is served instead of an
// error; a beacon that keeps reporting a slightly old position beats one that
// goes silent.
type Cached struct {
	src            Source
	acquireTimeout time.Duration
	maxAge         time.Duration
	now            func() time.Time

	mu   sync.Mutex
	last Fix
	ok   bool
}

// NewCached builds the caching wrapper.
func NewCached(src Source, acquireTimeout, maxAge time.Duration) *Cached {
	return &Cached{
		src:            src,
		acquireTimeout: acquireTimeout,
		maxAge:         maxAge,
		now:            time.Now,
	}
}

func (c *Cached) fresh(f Fix) bool {
	return c.now().Sub(f.AcquiredAt) <= c.maxAge
}

// Current returns a fix no older than the configured max age.
func (c *Cached) Current(ctx context.Context) (Fix, error) {
	c.mu.Lock()
	if c.ok && c.fresh(c.last) {
		f := c.last
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	acquireCtx, cancel := context.WithTimeout(ctx, c.acquireTimeout)
	defer cancel()

	f, err := c.src.Current(acquireCtx)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.ok {
			return c.last, nil
		}
		return Fix{}, err
	}
	if f.AcquiredAt.IsZero() {
		f.AcquiredAt = c.now()
	}

	c.mu.Lock()
	c.last = f
	c.ok = true
	c.mu.Unlock()
	return f, nil
}

// Simulated is a deterministic source that drifts from an origin point. It
// stands in where no real positioning provider is wired up.
type Simulated struct {
	mu    sync.Mutex
	pos   geo.Point
	step  int
	now   func() time.Time
	delta float64
}

// NewSimulated starts a simulated walker at origin.
func NewSimulated(origin geo.Point) *Simulated {
	return &Simulated{
		pos:   origin,
		now:   time.Now,
		delta: 0.0005,
	}
}

// Current advances the walker one step and returns the new position. The walk
// traces a slow loop so latitude and longitude stay in range.
func (s *Simulated) Current(_ context.Context) (Fix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	angle := float64(s.step) * math.Pi / 32
	s.pos.Lat += s.delta * math.Cos(angle)
	s.pos.Lng += s.delta * math.Sin(angle)
	s.step++

	if err := s.pos.Validate(); err != nil {
		return Fix{}, err
	}
	return Fix{Point: s.pos, AcquiredAt: s.now()}, nil
}
