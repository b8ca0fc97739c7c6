package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPower_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Power
		want string
	}{
		{Power(0), "0.00 kW"},
		{Power(1), "1.00 kW"},
		{Power(999.994), "999.99 kW"}, // just below 1 MW
		{Power(1000), "1.00 MW"},      // exactly 1 MW
		{Power(18000), "18.00 MW"},    // duck curve evening peak
		{Power(999_990), "999.99 MW"}, // just below 1 GW
		{Power(1_000_000), "1.00 GW"}, // exactly 1 GW
		{Power(-3000), "-3.00 MW"},    // discharging supply
		{Power(-12.5), "-12.50 kW"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%v", i, float64(tc.in)), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
		})
	}
}

func TestPower_Thousands(t *testing.T) {
	assert.Equal(t, "10K", Power(10000).Thousands())
	assert.Equal(t, "0K", Power(0).Thousands())
	assert.Equal(t, "4K", Power(3600).Thousands())
	assert.Equal(t, "-2K", Power(-2000).Thousands())
}

func TestPower_UnitAccessors(t *testing.T) {
	p := Power(2_500_000)
	assert.InDelta(t, 2_500_000.0, p.KW(), 1e-9)
	assert.InDelta(t, 2500.0, p.MW(), 1e-9)
	assert.InDelta(t, 2.5, p.GW(), 1e-12)
}
