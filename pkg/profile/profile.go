package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/loadshape/pkg/util"
)

// Hours is the number of hourly slots in a daily load profile.
const Hours = 24

var (
	// ErrLength indicates a profile whose slot count is not Hours.
	ErrLength = errors.New("profile: length must be 24")

	// ErrValue indicates a negative, NaN or infinite slot value.
	ErrValue = errors.New("profile: slot values must be finite and non-negative")
)

// Profile is an aggregate demand curve, one value (kW) per hour of day.
// Index order is the hour and is never reordered.
type Profile []float64

// DuckCurve returns the reference duck-shaped daily load: a midday trough
// followed by a steep evening ramp peaking at 18 MW around 19:00.
func DuckCurve() Profile {
	base := []float64{10, 9, 8, 7, 6, 6, 7, 8, 9, 10, 5, 4, 3, 3, 4, 5, 8, 12, 15, 18, 16, 14, 12, 11}
	p := make(Profile, len(base))
	for i, v := range base {
		p[i] = v * 1000
	}
	return p
}

// Parse reads a comma-separated list of slot values. Whitespace around
// entries is ignored. The result is validated.
func Parse(s string) (Profile, error) {
	fields := strings.Split(s, ",")
	p := make(Profile, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("profile: slot %d: %w", i, err)
		}
		p = append(p, v)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the slot count and that every value is a finite,
// non-negative power level.
func (p Profile) Validate() error {
	if len(p) != Hours {
		return fmt.Errorf("%w: got %d", ErrLength, len(p))
	}
	for i, v := range p {
		if !util.Finite(v) || v < 0 {
			return fmt.Errorf("%w: slot %d = %v", ErrValue, i, v)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	out := make(Profile, len(p))
	copy(out, p)
	return out
}

// Offset returns a copy with d added to every slot. It exists for display
// alignment only; shaped results are never stored offset.
func Offset(p Profile, d float64) Profile {
	out := p.Clone()
	for i := range out {
		out[i] += d
	}
	return out
}
