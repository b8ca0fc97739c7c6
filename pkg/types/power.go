package types

import (
	"fmt"
	"math"
)

// Power is a float64 wrapper representing a power level in kilowatts.
type Power float64

// Humanized returns a human-readable string with automatic unit (kW, MW, GW).
// Negative values keep their sign.
func (p Power) Humanized() string {
	a := math.Abs(float64(p))
	switch {
	case a >= 1e6:
		return fmt.Sprintf("%.2f GW", p.GW())
	case a >= 1e3:
		return fmt.Sprintf("%.2f MW", p.MW())
	default:
		return fmt.Sprintf("%.2f kW", p.KW())
	}
}

// Thousands formats the value as whole thousands with a K suffix, e.g. 12500 -> "13K".
func (p Power) Thousands() string {
	return fmt.Sprintf("%1.0fK", float64(p)*1e-3)
}

// KW returns the value in kilowatts.
func (p Power) KW() float64 { return float64(p) }

// MW returns the value in megawatts.
func (p Power) MW() float64 { return float64(p) / 1e3 }

// GW returns the value in gigawatts.
func (p Power) GW() float64 { return float64(p) / 1e6 }
