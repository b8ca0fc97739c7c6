package profile

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckCurve_Shape(t *testing.T) {
	p := DuckCurve()
	require.Len(t, p, Hours)
	require.NoError(t, p.Validate())

	assert.Equal(t, 10000.0, p[0])
	assert.Equal(t, 18000.0, p[19])
	assert.Equal(t, 11000.0, p[23])

	// each call hands out a fresh slice
	p[0] = -1
	assert.Equal(t, 10000.0, DuckCurve()[0])
}

func TestParse(t *testing.T) {
	raw := "10000, 9000,8000,7000,6000,6000,7000,8000,9000,10000,5000,4000," +
		"3000,3000,4000,5000,8000,12000,15000,18000,16000,14000,12000,11000"
	p, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, DuckCurve(), p)

	// trailing comma is tolerated
	p, err = Parse(raw + ",")
	require.NoError(t, err)
	assert.Len(t, p, Hours)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("1,2,3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLength))

	_, err = Parse(strings.Repeat("1,", 23) + "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot 23")

	_, err = Parse(strings.Repeat("1,", 23) + "-5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValue))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want error
	}{
		{"ok", DuckCurve(), nil},
		{"empty", Profile{}, ErrLength},
		{"short", make(Profile, 23), ErrLength},
		{"long", make(Profile, 96), ErrLength},
		{"negative", withSlot(5, -1), ErrValue},
		{"nan", withSlot(0, math.NaN()), ErrValue},
		{"inf", withSlot(23, math.Inf(1)), ErrValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCloneAndOffset(t *testing.T) {
	p := DuckCurve()
	c := p.Clone()
	c[3] = 0
	assert.Equal(t, 7000.0, p[3], "clone must not alias")

	o := Offset(p, 4500)
	for h := range p {
		assert.InDelta(t, p[h]+4500, o[h], 1e-9)
	}
	assert.Equal(t, 10000.0, p[0], "offset must not mutate input")

	assert.Nil(t, Profile(nil).Clone())
}

func withSlot(h int, v float64) Profile {
	p := DuckCurve()
	p[h] = v
	return p
}
