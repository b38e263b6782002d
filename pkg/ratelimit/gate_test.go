package ratelimit_test

import (
	"context"
	"idresolve/pkg/clock"
	"idresolve/pkg/ratelimit"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestGate_FirstPermitImmediate(t *testing.T) {
	fc := clock.NewFake(epoch)
	g := ratelimit.New(1, ratelimit.WithClock(fc))

	require.NoError(t, g.Acquire(context.Background()))
	require.Empty(t, fc.Sleeps())
}

func TestGate_OnePermitPerSecond(t *testing.T) {
	fc := clock.NewFake(epoch)
	g := ratelimit.New(1, ratelimit.WithClock(fc))

	for range 4 {
		require.NoError(t, g.Acquire(context.Background()))
	}

	require.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, fc.Sleeps())
	require.Equal(t, epoch.Add(3*time.Second), fc.Now())
}

func TestGate_NoBurstAfterIdle(t *testing.T) {
	fc := clock.NewFake(epoch)
	g := ratelimit.New(1, ratelimit.WithClock(fc))

	require.NoError(t, g.Acquire(context.Background()))
	fc.Advance(10 * time.Second)

	// Only one token accumulates however long the gate was idle.
	require.NoError(t, g.Acquire(context.Background()))
	require.NoError(t, g.Acquire(context.Background()))
	require.Equal(t, []time.Duration{time.Second}, fc.Sleeps())
}

func TestGate_PartialRefill(t *testing.T) {
	fc := clock.NewFake(epoch)
	g := ratelimit.New(1, ratelimit.WithClock(fc))

	require.NoError(t, g.Acquire(context.Background()))
	fc.Advance(400 * time.Millisecond)
	require.NoError(t, g.Acquire(context.Background()))
	sleeps := fc.Sleeps()
	require.Len(t, sleeps, 1)
	require.InDelta(t, float64(600*time.Millisecond), float64(sleeps[0]), float64(time.Microsecond))
}

func TestGate_ContextCanceled(t *testing.T) {
	fc := clock.NewFake(epoch)
	g := ratelimit.New(1, ratelimit.WithClock(fc))
	require.NoError(t, g.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, g.Acquire(ctx), context.Canceled)
}

func TestGate_ConcurrentCallersSerialized(t *testing.T) {
	g := ratelimit.New(50)

	start := time.Now()
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, g.Acquire(context.Background()))
		}()
	}
	wg.Wait()

	// 5 permits at 50/s need at least 4 refill intervals.
	require.GreaterOrEqual(t, time.Since(start), 4*g.Interval()-5*time.Millisecond)
}

func TestGate_DefaultRate(t *testing.T) {
	require.Equal(t, time.Second, ratelimit.New(0).Interval())
}
