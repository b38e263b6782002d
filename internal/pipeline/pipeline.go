// Package pipeline drives candidate resolution for one target identity.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"idresolve/internal/config"
	"idresolve/internal/correlate"
	"idresolve/internal/output"
	"idresolve/pkg/candidates"
	"idresolve/pkg/clock"
	"idresolve/pkg/domain"
	"idresolve/pkg/logger"
	"idresolve/pkg/metrics"
	"idresolve/pkg/profiles"
	"idresolve/pkg/serrors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure a Pipeline.
type Options struct {
	// Delay is waited between two consecutive candidates.
	Delay time.Duration
	// Clock drives the delay. Defaults to the wall clock.
	Clock clock.Clock
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// NewOptions derives Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{Delay: cfg.Pipeline.Delay}
}

// Summary describes a finished run.
type Summary struct {
	Candidates int
	Resolved   int
	Emitted    int
	Best       domain.Tier
	Stopped    bool
}

// Pipeline checks candidates one at a time: for each it fetches the profile
// and the contact hint concurrently, scores them and hands the result to the
// sink, stopping as soon as the sink asks to.
type Pipeline struct {
	client profiles.Client
	source candidates.Source
	sink   output.Sink
	opts   Options
}

// New creates a Pipeline.
func New(client profiles.Client, source candidates.Source, sink output.Sink, opts Options) *Pipeline {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	return &Pipeline{client: client, source: source, sink: sink, opts: opts}
}

// Run resolves target. It fails only when the identity is invalid, the
// candidate search fails, the sink cannot write or ctx ends; every
// candidate-local problem is logged and skipped.
func (p *Pipeline) Run(ctx context.Context, target domain.Identity) (Summary, error) {
	summary := Summary{Best: domain.TierNone}

	if err := target.Validate(); err != nil {
		return summary, err //nolint: wrapcheck
	}

	ctx = logger.WithFields(ctx, zap.String("runID", uuid.NewString()))

	handles, err := p.source.Search(ctx, target.Name)
	if err != nil {
		return summary, fmt.Errorf("could not search candidates: %w", err)
	}
	summary.Candidates = len(handles)

	if len(handles) == 0 {
		logger.Info(ctx, "no candidates found", zap.String("name", target.Name))
		if n, ok := p.sink.(output.Notifier); ok {
			n.NoCandidates(ctx, target.Name)
		}

		return summary, nil
	}

	for i, raw := range handles {
		if i > 0 && p.opts.Delay > 0 {
			if err := p.opts.Clock.Sleep(ctx, p.opts.Delay); err != nil {
				return summary, fmt.Errorf("interrupted between candidates: %w", err)
			}
		}
		if err := ctx.Err(); err != nil {
			return summary, err //nolint: wrapcheck
		}

		handle := domain.CleanHandle(raw)
		if handle == "" {
			p.opts.Metrics.IncCandidate(metrics.OutcomeSkipped)

			continue
		}
		cctx := logger.WithFields(ctx, zap.String("handle", handle), zap.Int("candidate", i+1))

		profile, hint := p.fetch(cctx, handle)
		if err := ctx.Err(); err != nil {
			return summary, err //nolint: wrapcheck
		}
		if profile == nil {
			continue
		}
		summary.Resolved++

		res := correlate.Build(target, *profile, hint)
		stop, err := p.sink.Emit(cctx, res, target)
		if err != nil {
			return summary, fmt.Errorf("could not emit result: %w", err)
		}
		summary.Emitted++
		p.opts.Metrics.IncTier(string(res.MatchLevel))
		if res.MatchLevel.Rank() > summary.Best.Rank() {
			summary.Best = res.MatchLevel
		}

		logger.Debug(cctx, "candidate scored",
			zap.String("tier", string(res.MatchLevel)),
			zap.Int("score", res.MatchScore))

		if stop {
			summary.Stopped = true
			logger.Info(cctx, "strong match found, stopping search")

			break
		}
	}

	return summary, nil
}

// fetch runs the profile resolution and the contact lookup side by side.
// Neither cancels the other; a failed lookup just means no hint.
func (p *Pipeline) fetch(ctx context.Context, handle string) (*domain.Profile, domain.ContactHint) {
	var (
		g       errgroup.Group
		profile *domain.Profile
		hint    domain.ContactHint
	)

	g.Go(func() error {
		res, err := p.client.Profile(ctx, handle)
		if err != nil {
			logger.Warn(ctx, "could not resolve profile", zap.Error(err))
			p.opts.Metrics.IncCandidate(metrics.OutcomeFailed)

			return nil
		}
		if res == nil {
			p.opts.Metrics.IncCandidate(metrics.OutcomeAbsent)

			return nil
		}
		p.opts.Metrics.IncCandidate(metrics.OutcomeResolved)
		profile = res

		return nil
	})

	g.Go(func() error {
		res, err := p.client.Lookup(ctx, handle)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Warn(ctx, "contact lookup failed", zap.Error(err))
			}
			p.opts.Metrics.IncLookupFailure(lookupFailureReason(err))

			return nil
		}
		hint = res

		return nil
	})

	_ = g.Wait()

	return profile, hint
}

func lookupFailureReason(err error) string {
	if errors.Is(err, context.Canceled) {
		return "CANCELED"
	}
	if k := serrors.KindOf(err); k != nil {
		return k.Error()
	}

	return metrics.UnknownReason
}
