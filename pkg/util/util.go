package util

import (
	"math"
	"strconv"
)

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// Distance returns the euclidean norm of a-b over the shorter of the two.
func Distance(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Finite reports whether x is neither NaN nor ±Inf.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FmtFloat formats f with four decimals for CSV output.
func FmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
