package solver

import "errors"

var (
	// ErrInvalidConfiguration is wrapped by every validation failure. Use
	// errors.Is against it, or against one of the specific causes below.
	ErrInvalidConfiguration = errors.New("solver: invalid configuration")

	// ErrVariant indicates an unknown step-size variant.
	ErrVariant = errors.New("solver: unknown variant")

	// ErrSigma indicates σ <= 0 or non-finite.
	ErrSigma = errors.New("solver: sigma must be > 0")

	// ErrFleetSize indicates a non-positive fleet size for a variant that uses it.
	ErrFleetSize = errors.New("solver: fleet size must be > 0")

	// ErrStepSize indicates a non-positive or non-finite constant step size.
	ErrStepSize = errors.New("solver: step size must be > 0")

	// ErrMaxIterations indicates a negative iteration cap.
	ErrMaxIterations = errors.New("solver: max iterations must be >= 0")

	// ErrTolerance indicates tolerance <= 0 or non-finite.
	ErrTolerance = errors.New("solver: tolerance must be > 0")

	// ErrProfile indicates a baseline that is not a valid 24-slot profile.
	ErrProfile = errors.New("solver: invalid baseline profile")

	// ErrNoSigmas indicates a sweep over an empty σ set.
	ErrNoSigmas = errors.New("solver: no sigma values")
)
