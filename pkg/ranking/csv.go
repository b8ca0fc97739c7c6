package ranking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ja7ad/loadshape/pkg/util"
)

// column aliases, compared after lowercasing and trimming
var (
	colID       = []string{"vehicle_id", "id"}
	colPlugIn   = []string{"plug_in_time", "plug_in"}
	colPlugOut  = []string{"estimated_plug_out_time", "plug_out_time", "plug_out"}
	colCapacity = []string{"battry_capacity_kwh", "battery_capacity_kwh", "capacity_kwh"}
	colSOC      = []string{"present_soc", "soc"}
)

// ReadCSV parses a vehicle table with a header row. Required columns are
// plug-in slot, estimated plug-out slot, battery capacity and present SOC;
// an ID column is optional and defaults to the 1-based row number.
func ReadCSV(r io.Reader) ([]Vehicle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
		}
		return nil, fmt.Errorf("ranking: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := idx[a]; ok {
				return i
			}
		}
		return -1
	}

	id := find(colID)
	plugIn, plugOut := find(colPlugIn), find(colPlugOut)
	capacity, soc := find(colCapacity), find(colSOC)
	required := []struct {
		name string
		idx  int
	}{
		{colPlugIn[0], plugIn},
		{colPlugOut[0], plugOut},
		{colCapacity[0], capacity},
		{colSOC[0], soc},
	}
	for _, c := range required {
		if c.idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c.name)
		}
	}

	var out []Vehicle
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRecord, row, err)
		}

		v := Vehicle{ID: strconv.Itoa(row)}
		if id >= 0 && strings.TrimSpace(rec[id]) != "" {
			v.ID = strings.TrimSpace(rec[id])
		}
		if v.PlugIn, err = parseSlot(rec[plugIn]); err != nil {
			return nil, fmt.Errorf("%w: row %d plug-in: %w", ErrMalformedRecord, row, err)
		}
		if v.PlugOut, err = parseSlot(rec[plugOut]); err != nil {
			return nil, fmt.Errorf("%w: row %d plug-out: %w", ErrMalformedRecord, row, err)
		}
		if v.CapacityKWh, err = parseFloat(rec[capacity]); err != nil {
			return nil, fmt.Errorf("%w: row %d capacity: %w", ErrMalformedRecord, row, err)
		}
		if v.SOC, err = parseFloat(rec[soc]); err != nil {
			return nil, fmt.Errorf("%w: row %d soc: %w", ErrMalformedRecord, row, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteCSV writes one row per allocation in rank order.
func WriteCSV(w io.Writer, s Schedule) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"rank", "vehicle_id", "plug_in", "plug_out", "capacity_kwh", "soc",
		"score", "rate_kw", "cumulative_kw", "mode",
	})
	for i, a := range s.Allocations {
		_ = cw.Write([]string{
			strconv.Itoa(i + 1),
			a.Vehicle.ID,
			strconv.Itoa(a.Vehicle.PlugIn),
			strconv.Itoa(a.Vehicle.PlugOut),
			util.FmtFloat(a.Vehicle.CapacityKWh),
			util.FmtFloat(a.Vehicle.SOC),
			util.FmtFloat(a.Score),
			util.FmtFloat(a.Rate),
			util.FmtFloat(a.Cumulative),
			s.Mode.String(),
		})
	}
	cw.Flush()
	return cw.Error()
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

// parseSlot accepts integral values written as floats ("54.0") too.
func parseSlot(s string) (int, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("slot %q is not an integer", s)
	}
	return int(v), nil
}
