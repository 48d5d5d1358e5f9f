package dashboard

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ride-hail-client/internal/common/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter("test", io.Discard)
}

func TestPollerCycleRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}
	p := NewPoller("test", time.Hour, fetch, testLogger())

	p.cycle(context.Background())
	assert.Equal(t, int32(2), calls.Load(), "one failure, one retry")
}

func TestPollerCycleGivesUpAfterRetry(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("down")
	}
	p := NewPoller("test", time.Hour, fetch, testLogger())

	p.cycle(context.Background())
	assert.Equal(t, int32(2), calls.Load(), "exactly one retry, then wait for next tick")
}

func TestPollerRunFiresImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	p := NewPoller("test", 15*time.Millisecond, fetch, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond,
		"first cycle plus at least two ticks")
	cancel()
	<-done
}

func TestPollerStopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	p := NewPoller("test", 10*time.Millisecond, fetch, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond, "first cycle")
	cancel()
	<-done

	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no cycles after cancellation")
}
