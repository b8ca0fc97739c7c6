package ranking

import (
	"fmt"
	"math"
	"sort"
)

// scoreNorm rescales the weighted score to roughly 0..100.
const scoreNorm = 100 / 54.07

// Score weighs battery capacity (30%), missing charge (40%) and how close
// the vehicle is to leaving (30%) at the given slot.
func Score(v Vehicle, slot int) float64 {
	remaining := float64(v.PlugOut - slot)
	return (0.3*v.CapacityKWh + 0.4*(1-v.SOC) + 0.3*(float64(Slots-1)-remaining)) * scoreNorm
}

// Rate returns the charge or discharge rate (kW) for a vehicle by SOC tier.
// Negative SOC falls in the lowest tier; SOC above 1 or NaN gets no rate.
//
//	SOC        charging   discharging
//	< 0.3      0.5C       0.1C
//	< 0.7      1.1C       0.2C
//	<= 1       0.5C       0.5C
func Rate(v Vehicle, m Mode) float64 {
	var c float64
	switch {
	case v.SOC < 0.3:
		c = pick(m, 0.5, 0.1)
	case v.SOC < 0.7:
		c = pick(m, 1.1, 0.2)
	case v.SOC <= 1:
		c = 0.5
	default:
		return 0
	}
	return c * v.CapacityKWh
}

func pick(m Mode, charging, discharging float64) float64 {
	if m == Charging {
		return charging
	}
	return discharging
}

// Available reports whether the vehicle is plugged in strictly across slot.
func Available(v Vehicle, slot int) bool {
	return v.PlugIn < slot && v.PlugOut > slot
}

// Rank selects the vehicles plugged in at slot, orders them by score
// (highest first when charging, lowest first when discharging) and admits
// those whose cumulative rate, summed in rank order, stays within |budget|.
//
// An empty schedule is a valid outcome.
func Rank(vehicles []Vehicle, budget float64, slot int) (Schedule, error) {
	if slot < 0 || slot >= Slots {
		return Schedule{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	mode := ModeFor(budget)
	sched := Schedule{Mode: mode, Slot: slot, Budget: budget}

	list := make([]Allocation, 0, len(vehicles))
	for _, v := range vehicles {
		if !Available(v, slot) {
			continue
		}
		list = append(list, Allocation{Vehicle: v, Score: Score(v, slot), Rate: Rate(v, mode)})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if mode == Charging {
			return list[i].Score > list[j].Score
		}
		return list[i].Score < list[j].Score
	})

	limit := math.Abs(budget)
	var cum float64
	for _, a := range list {
		cum += a.Rate
		if cum > limit {
			continue
		}
		a.Cumulative = cum
		sched.Allocations = append(sched.Allocations, a)
	}
	return sched, nil
}
