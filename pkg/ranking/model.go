package ranking

import "errors"

// Slots is the number of 15-minute time slots in a day.
const Slots = 96

var (
	// ErrInvalidSlot indicates a current slot outside [0, Slots).
	ErrInvalidSlot = errors.New("ranking: slot out of range")

	// ErrMissingColumn indicates a CSV header without a required column.
	ErrMissingColumn = errors.New("ranking: missing column")

	// ErrMalformedRecord indicates a CSV row that could not be parsed.
	ErrMalformedRecord = errors.New("ranking: malformed record")
)

// Vehicle is one plugged-in EV.
// Units:
//   - PlugIn/PlugOut: 15-minute slot index [0..95]
//   - CapacityKWh: battery capacity
//   - SOC: state of charge [0..1]
type Vehicle struct {
	ID          string
	PlugIn      int
	PlugOut     int
	CapacityKWh float64
	SOC         float64
}

// Mode is the direction of a power budget.
type Mode int

const (
	Discharging Mode = iota // supply power back to the grid
	Charging                // absorb surplus power
)

func (m Mode) String() string {
	if m == Charging {
		return "charging"
	}
	return "discharging"
}

// ModeFor returns Charging for a positive budget and Discharging otherwise.
func ModeFor(budget float64) Mode {
	if budget > 0 {
		return Charging
	}
	return Discharging
}

// Allocation is one admitted vehicle.
type Allocation struct {
	Vehicle    Vehicle
	Score      float64 // priority score, roughly 0..100
	Rate       float64 // kW
	Cumulative float64 // kW, running sum in rank order
}

// Schedule is the ranked, budget-filtered result for one slot.
type Schedule struct {
	Mode        Mode
	Slot        int
	Budget      float64
	Allocations []Allocation
}

// TotalRate is the sum of allocated rates.
func (s Schedule) TotalRate() float64 {
	var sum float64
	for _, a := range s.Allocations {
		sum += a.Rate
	}
	return sum
}

// Utilized is the cumulative allocation of the last admitted vehicle.
func (s Schedule) Utilized() float64 {
	if len(s.Allocations) == 0 {
		return 0
	}
	return s.Allocations[len(s.Allocations)-1].Cumulative
}
