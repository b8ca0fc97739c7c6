package solver

import (
	"fmt"

	"github.com/ja7ad/loadshape/pkg/profile"
	"github.com/ja7ad/loadshape/pkg/util"
)

// Validate checks a baseline/config/variant triple. Every failure wraps
// ErrInvalidConfiguration together with the specific cause.
func Validate(baseline profile.Profile, cfg Config, v Variant) error {
	if !v.valid() {
		return invalid(ErrVariant, "variant=%d", int(v))
	}
	if err := baseline.Validate(); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrInvalidConfiguration, ErrProfile, err)
	}
	if !util.Finite(cfg.Sigma) || cfg.Sigma <= 0 {
		return invalid(ErrSigma, "sigma=%v", cfg.Sigma)
	}
	if v.usesFleetSize() && cfg.FleetSize <= 0 {
		return invalid(ErrFleetSize, "fleet=%d", cfg.FleetSize)
	}
	if v.usesStepSize() && (!util.Finite(cfg.StepSize) || cfg.StepSize <= 0) {
		return invalid(ErrStepSize, "alpha=%v", cfg.StepSize)
	}
	if cfg.MaxIterations < 0 {
		return invalid(ErrMaxIterations, "max=%d", cfg.MaxIterations)
	}
	if !util.Finite(cfg.Tolerance) || cfg.Tolerance <= 0 {
		return invalid(ErrTolerance, "tol=%v", cfg.Tolerance)
	}
	return nil
}

func invalid(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrInvalidConfiguration, cause, fmt.Sprintf(format, args...))
}

// StepSize returns α for the zero-based iteration k.
//
//	FixedAscent, IncrementalConstant: α = cfg.StepSize
//	IncrementalDecreasing:            αₖ = 1 / ((1 + N/σ)² + k)
func StepSize(v Variant, cfg Config, k int) float64 {
	if v == IncrementalDecreasing {
		r := 1 + float64(cfg.FleetSize)/cfg.Sigma
		return 1 / (r*r + float64(k))
	}
	return cfg.StepSize
}

// offsetCoefficient is c in offset[t] = -c·λ[t].
func offsetCoefficient(v Variant, cfg Config) float64 {
	if v == FixedAscent {
		return float64(cfg.FleetSize) / (2 * cfg.Sigma)
	}
	return 1 / (2 * cfg.Sigma)
}

// Solve runs dual subgradient ascent on the per-slot price λ until the
// update norm drops below cfg.Tolerance or cfg.MaxIterations updates have
// been applied. Hitting the cap is not an error; inspect Result.Converged.
//
// The baseline is never modified.
func Solve(baseline profile.Profile, cfg Config, v Variant) (Result, error) {
	if err := Validate(baseline, cfg, v); err != nil {
		return Result{}, err
	}

	coef := offsetCoefficient(v, cfg)
	lambda := make([]float64, len(baseline))
	next := make([]float64, len(baseline))
	candidate := baseline.Clone()

	res := Result{Variant: v, Sigma: cfg.Sigma}
	for k := 0; k < cfg.MaxIterations; k++ {
		res.Residual = step(baseline, lambda, next, candidate, coef, StepSize(v, cfg, k))
		res.Iterations = k + 1
		lambda, next = next, lambda
		if res.Residual < cfg.Tolerance {
			res.Converged = true
			break
		}
	}

	res.Lambda = lambda
	res.Load = terminalLoad(v, baseline, lambda, candidate, cfg.Sigma)
	return res, nil
}

// step computes one update from lambda into next and records the candidate
// shaped load at lambda. It returns ‖next − lambda‖₂. Slots are independent.
func step(baseline profile.Profile, lambda, next, candidate []float64, coef, alpha float64) float64 {
	for t, d := range baseline {
		candidate[t] = d - coef*lambda[t]
		grad := -lambda[t]/2 + candidate[t]
		next[t] = lambda[t] + alpha*grad
	}
	return util.Distance(next, lambda)
}

// terminalLoad picks the reported shaped load. FixedAscent reports the last
// in-loop candidate (taken at the λ before the final update). The
// incremental variants recompute baseline − λ/(2σ) at the terminal λ.
func terminalLoad(v Variant, baseline profile.Profile, lambda, candidate []float64, sigma float64) profile.Profile {
	if v == FixedAscent {
		return profile.Profile(candidate)
	}
	out := make(profile.Profile, len(baseline))
	for t, d := range baseline {
		out[t] = d - lambda[t]/(2*sigma)
	}
	return out
}
