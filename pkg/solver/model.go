package solver

import (
	"fmt"
	"strings"

	"github.com/ja7ad/loadshape/pkg/profile"
)

// Variant selects the step-size policy and control-offset scaling.
type Variant int

const (
	FixedAscent           Variant = iota + 1 // plain gradient ascent, fleet-scaled offset
	IncrementalConstant                      // incremental subgradient, constant step
	IncrementalDecreasing                    // incremental subgradient, 1/((1+N/σ)²+k) step
)

// Variants lists every supported variant in presentation order.
var Variants = []Variant{FixedAscent, IncrementalConstant, IncrementalDecreasing}

func (v Variant) String() string {
	switch v {
	case FixedAscent:
		return "fixed-ascent"
	case IncrementalConstant:
		return "incremental-constant"
	case IncrementalDecreasing:
		return "incremental-decreasing"
	default:
		return "unknown"
	}
}

// ParseVariant accepts the String form of a variant, case-insensitively,
// plus the short aliases ga, isgm-constant and isgm-decreasing.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed-ascent", "ga", "gradient-ascent":
		return FixedAscent, nil
	case "incremental-constant", "isgm-constant":
		return IncrementalConstant, nil
	case "incremental-decreasing", "isgm-decreasing":
		return IncrementalDecreasing, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrVariant, s)
	}
}

func (v Variant) valid() bool {
	return v >= FixedAscent && v <= IncrementalDecreasing
}

// usesFleetSize reports whether N enters the offset or the step-size rule.
func (v Variant) usesFleetSize() bool {
	return v == FixedAscent || v == IncrementalDecreasing
}

// usesStepSize reports whether Config.StepSize is read.
func (v Variant) usesStepSize() bool {
	return v == FixedAscent || v == IncrementalConstant
}

// Config holds solver parameters.
// Units:
//   - Sigma: dispersion/cost coefficient, > 0
//   - FleetSize: number of vehicles N (FixedAscent offset, IncrementalDecreasing step)
//   - StepSize: constant α (FixedAscent, IncrementalConstant)
//   - MaxIterations: hard iteration cap, 0 returns the baseline
//   - Tolerance: stop once ‖λₖ₊₁ − λₖ‖₂ drops below it
type Config struct {
	Sigma         float64
	FleetSize     int
	StepSize      float64
	MaxIterations int
	Tolerance     float64
}

// DefaultConfig returns the reference parameters for a variant.
// Unknown variants get the FixedAscent values.
func DefaultConfig(v Variant) Config {
	switch v {
	case IncrementalConstant:
		return Config{
			Sigma:         1,
			FleetSize:     200,
			StepSize:      0.5,
			MaxIterations: 2000,
			Tolerance:     1e-7,
		}
	case IncrementalDecreasing:
		return Config{
			Sigma:         1,
			FleetSize:     200,
			StepSize:      0.5, // unused, kept so switching variants stays valid
			MaxIterations: 100000,
			Tolerance:     1e-7,
		}
	default:
		return Config{
			Sigma:         100,
			FleetSize:     200,
			StepSize:      0.5,
			MaxIterations: 200,
			Tolerance:     1e-3,
		}
	}
}

// Merge overlays the positive fields of override onto base.
// Zero or negative fields in override are treated as "unset".
func Merge(base, override Config) Config {
	merged := base
	if override.Sigma > 0 {
		merged.Sigma = override.Sigma
	}
	if override.FleetSize > 0 {
		merged.FleetSize = override.FleetSize
	}
	if override.StepSize > 0 {
		merged.StepSize = override.StepSize
	}
	if override.MaxIterations > 0 {
		merged.MaxIterations = override.MaxIterations
	}
	if override.Tolerance > 0 {
		merged.Tolerance = override.Tolerance
	}
	return merged
}

// Result is the outcome of one solver run.
type Result struct {
	Variant Variant
	Sigma   float64

	// Load is the shaped load reported to consumers (kW per hour slot).
	Load profile.Profile
	// Lambda is the terminal dual price vector.
	Lambda []float64

	// Iterations is the number of updates applied, at most MaxIterations.
	Iterations int
	// Converged is true when the last update norm fell below Tolerance.
	Converged bool
	// Residual is the last update norm ‖λₖ₊₁ − λₖ‖₂ (0 when no iteration ran).
	Residual float64
}
