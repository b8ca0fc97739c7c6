package solver

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/loadshape/pkg/profile"
)

type sweepOptions struct {
	workers int
}

// SweepOption tunes Sweep.
type SweepOption func(*sweepOptions)

// WithWorkers caps the number of σ values solved concurrently.
// n <= 0 keeps the default of runtime.GOMAXPROCS(0).
func WithWorkers(n int) SweepOption {
	return func(o *sweepOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Sweep solves the same baseline once per distinct σ, overriding cfg.Sigma,
// and returns the results keyed by σ. Runs share nothing but the read-only
// baseline and may execute concurrently.
//
// Every σ is validated before any run starts, so a validation failure
// returns no results. Cancellation of ctx stops runs that have not started.
func Sweep(ctx context.Context, baseline profile.Profile, cfg Config, v Variant, sigmas []float64, opts ...SweepOption) (map[float64]Result, error) {
	o := sweepOptions{workers: runtime.GOMAXPROCS(0)}
	for _, fn := range opts {
		fn(&o)
	}

	uniq := dedupe(sigmas)
	if len(uniq) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrNoSigmas)
	}
	for _, s := range uniq {
		c := cfg
		c.Sigma = s
		if err := Validate(baseline, c, v); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(uniq))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, s := range uniq {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := cfg
			c.Sigma = s
			r, err := Solve(baseline, c, v)
			if err != nil {
				return fmt.Errorf("sigma %v: %w", s, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[float64]Result, len(results))
	for _, r := range results {
		out[r.Sigma] = r
	}
	return out, nil
}

// Sigmas returns the keys of a sweep result in ascending order.
func Sigmas(results map[float64]Result) []float64 {
	keys := make([]float64, 0, len(results))
	for s := range results {
		keys = append(keys, s)
	}
	slices.Sort(keys)
	return keys
}

func dedupe(sigmas []float64) []float64 {
	seen := make(map[float64]struct{}, len(sigmas))
	out := make([]float64, 0, len(sigmas))
	for _, s := range sigmas {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
