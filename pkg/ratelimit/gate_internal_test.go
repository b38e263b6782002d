package ratelimit

import (
	"context"
	"idresolve/pkg/clock"
	"idresolve/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAcquire_UnsatisfiableLimiterIsConfigError(t *testing.T) {
	g := &Gate{limiter: rate.NewLimiter(1, 0), clock: clock.System{}}

	err := g.Acquire(context.Background())
	require.ErrorIs(t, err, serrors.ErrConfig)
	require.True(t, serrors.IsFatal(err))
}
