// Package ratelimit provides the process-wide throttle applied to every call
// against the primary profile API.
package ratelimit

import (
	"context"
	"fmt"
	"idresolve/pkg/clock"
	"idresolve/pkg/logger"
	"idresolve/pkg/serrors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultPerSecond is the permit rate used when none is configured.
const DefaultPerSecond = 1.0

// Gate is a token bucket with a burst of one: at most one permit is available
// at any time and it refills continuously at the configured rate. A single
// Gate is meant to be shared by every caller of the profile API. It is safe
// for concurrent use.
type Gate struct {
	limiter *rate.Limiter
	clock   clock.Clock
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock makes the gate read time from and sleep on c.
func WithClock(c clock.Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// New builds a Gate granting perSecond permits per second. Non-positive rates
// fall back to DefaultPerSecond.
func New(perSecond float64, opts ...Option) *Gate {
	if perSecond <= 0 {
		perSecond = DefaultPerSecond
	}

	g := &Gate{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		clock:   clock.System{},
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Acquire blocks until one permit is available or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	now := g.clock.Now()
	r := g.limiter.ReserveN(now, 1)
	if !r.OK() {
		return serrors.With(serrors.ErrConfig, "rate gate cannot grant a permit")
	}

	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	logger.Debug(ctx, "waiting for rate gate", zap.Duration("delay", delay))
	if err := g.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(g.clock.Now())

		return fmt.Errorf("waiting for rate gate: %w", err)
	}

	return nil
}

// Interval returns the time between two permits.
func (g *Gate) Interval() time.Duration {
	return time.Duration(float64(time.Second) / float64(g.limiter.Limit()))
}
