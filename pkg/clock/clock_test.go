package clock_test

import (
	"context"
	"idresolve/pkg/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystem_SleepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := clock.System{}.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSystem_SleepZero(t *testing.T) {
	require.NoError(t, clock.System{}.Sleep(context.Background(), 0))
}

func TestFake(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := clock.NewFake(start)

	require.NoError(t, f.Sleep(context.Background(), 2*time.Second))
	require.NoError(t, f.Sleep(context.Background(), 4*time.Second))
	f.Advance(time.Second)

	require.Equal(t, start.Add(7*time.Second), f.Now())
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, f.Sleeps())
	require.Equal(t, 6*time.Second, f.Slept())
}
