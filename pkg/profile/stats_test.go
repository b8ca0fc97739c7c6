package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_DuckCurve(t *testing.T) {
	s := Summarize(DuckCurve())

	assert.Equal(t, 18000.0, s.Peak)
	assert.Equal(t, 19, s.PeakHour)
	assert.Equal(t, 3000.0, s.Trough)
	assert.Equal(t, 12, s.TroughHour, "first occurrence of the trough wins")
	assert.Equal(t, 15000.0, s.Range)
	assert.InDelta(t, 210000.0, s.EnergyKWh, 1e-9)
	assert.InDelta(t, 210000.0/24, s.Mean, 1e-9)
	assert.InDelta(t, (210000.0/24)/18000, s.LoadFactor, 1e-12)

	t.Logf("peak=%.0f@%02d trough=%.0f@%02d range=%.0f LF=%.3f",
		s.Peak, s.PeakHour, s.Trough, s.TroughHour, s.Range, s.LoadFactor)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestSummarize_FlatProfileHasZeroRange(t *testing.T) {
	p := make(Profile, Hours)
	for i := range p {
		p[i] = 500
	}
	s := Summarize(p)
	assert.Equal(t, 0.0, s.Range)
	assert.InDelta(t, 1.0, s.LoadFactor, 1e-12)
}

func TestCompare(t *testing.T) {
	base := DuckCurve()
	shaped := make(Profile, Hours)
	for h, v := range base {
		shaped[h] = v / 3
	}

	c := Compare(base, shaped)
	assert.True(t, c.Flattened())
	assert.InDelta(t, 1.0/3, c.RangeRatio, 1e-12)
	assert.InDelta(t, 12000.0, c.PeakReduction, 1e-9)
	assert.InDelta(t, -210000.0*2/3, c.EnergyShift, 1e-6)

	same := Compare(base, base.Clone())
	assert.False(t, same.Flattened())
	assert.InDelta(t, 1.0, same.RangeRatio, 1e-12)
}
