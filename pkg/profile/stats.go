package profile

import "github.com/ja7ad/loadshape/pkg/util"

// Stats summarizes a profile.
// Units:
//   - Peak/Trough/Range/Mean: kW
//   - EnergyKWh: kWh, assuming one-hour slots
//   - LoadFactor: Mean/Peak, dimensionless in [0..1] for non-negative loads
type Stats struct {
	Peak       float64
	PeakHour   int
	Trough     float64
	TroughHour int
	Range      float64
	Mean       float64
	EnergyKWh  float64
	LoadFactor float64
}

// Summarize walks the profile once and returns its Stats.
// An empty profile yields the zero value.
func Summarize(p Profile) Stats {
	if len(p) == 0 {
		return Stats{}
	}

	s := Stats{Peak: p[0], Trough: p[0]}
	var sum float64
	for h, v := range p {
		if v > s.Peak {
			s.Peak, s.PeakHour = v, h
		}
		if v < s.Trough {
			s.Trough, s.TroughHour = v, h
		}
		sum += v
	}

	s.Range = s.Peak - s.Trough
	s.Mean = sum / float64(len(p))
	s.EnergyKWh = sum // 1h slots
	s.LoadFactor = util.SafeDiv(s.Mean, s.Peak)
	return s
}

// Comparison describes how a shaped profile differs from its baseline.
type Comparison struct {
	Baseline Stats
	Shaped   Stats

	// RangeRatio is shaped range over baseline range; below 1 means flatter.
	RangeRatio float64
	// PeakReduction is baseline peak minus shaped peak (kW).
	PeakReduction float64
	// EnergyShift is the net energy added (positive) or removed (kWh).
	EnergyShift float64
}

// Flattened reports whether the shaped peak-to-trough range is strictly
// smaller than the baseline's.
func (c Comparison) Flattened() bool {
	return c.Shaped.Range < c.Baseline.Range
}

// Compare summarizes both profiles and relates them.
func Compare(baseline, shaped Profile) Comparison {
	b := Summarize(baseline)
	s := Summarize(shaped)
	return Comparison{
		Baseline:      b,
		Shaped:        s,
		RangeRatio:    util.SafeDiv(s.Range, b.Range),
		PeakReduction: b.Peak - s.Peak,
		EnergyShift:   s.EnergyKWh - b.EnergyKWh,
	}
}
