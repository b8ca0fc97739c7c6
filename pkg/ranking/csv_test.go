package ranking

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Vehicle_ID,Plug_in_Time,Estimated_plug_out_Time,Battry_Capacity_kWh,Present_SOC
A,40,70,60,0.2
B,50,60,40,0.5
C,30.0,90,80,0.9
`

func TestReadCSV(t *testing.T) {
	vs, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, fleet()[:3], vs)
}

func TestReadCSV_HeaderAliasesAndDefaultIDs(t *testing.T) {
	in := "soc, capacity_kwh, plug_out, plug_in\n0.5,40,60,50\n0.9,80,90,30\n"
	vs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, Vehicle{ID: "1", PlugIn: 50, PlugOut: 60, CapacityKWh: 40, SOC: 0.5}, vs[0])
	assert.Equal(t, "2", vs[1].ID)
}

func TestReadCSV_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrMissingColumn},
		{"no soc column", "plug_in,plug_out,capacity_kwh\n1,2,3\n", ErrMissingColumn},
		{"bad number", "plug_in,plug_out,capacity_kwh,soc\n1,2,x,0.5\n", ErrMalformedRecord},
		{"fractional slot", "plug_in,plug_out,capacity_kwh,soc\n1.5,2,3,0.5\n", ErrMalformedRecord},
		{"short row", "plug_in,plug_out,capacity_kwh,soc\n1,2,3\n", ErrMalformedRecord},
		{"nan", "plug_in,plug_out,capacity_kwh,soc\n1,2,3,NaN\n", ErrMalformedRecord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestReadCSV_MissingColumnOrder(t *testing.T) {
	in := "vehicle_id,capacity_kwh\nA,60\n"
	for range 20 {
		_, err := ReadCSV(strings.NewReader(in))
		require.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), colPlugIn[0])
	}

	_, err := ReadCSV(strings.NewReader("plug_in,capacity_kwh\n1,60\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), colPlugOut[0])
}

func TestWriteCSV(t *testing.T) {
	s, err := Rank(fleet(), 100, 54)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "rank", rows[0][0])
	assert.Equal(t, []string{"1", "A", "40", "70", "60.0000", "0.2000"}, rows[1][:6])
	assert.Equal(t, "70.0000", rows[2][8])
	assert.Equal(t, "charging", rows[2][9])
}
