package units_test

import (
	"testing"

	"github.com/leapstack-labs/dimcheck/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionAlgebra(t *testing.T) {
	velocity := units.Metre.Div(units.Second)
	assert.Equal(t, units.Metre, velocity.Mul(units.Second))

	area := units.Metre.Pow(2)
	assert.Equal(t, units.Metre, area.Pow(0.5))

	assert.True(t, units.Dimensionless.IsDimensionless())
	assert.False(t, velocity.IsDimensionless())
	assert.True(t, velocity.Equal(units.Metre.Div(units.Second)))
	assert.False(t, velocity.Equal(units.Metre))
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		name string
		dim  units.Dimension
		want string
	}{
		{"dimensionless", units.Dimensionless, "1"},
		{"length", units.Metre, "m"},
		{"velocity", units.Metre.Div(units.Second), "m s^-1"},
		{"acceleration", units.Metre.Div(units.Second.Pow(2)), "m s^-2"},
		{"area", units.Metre.Pow(2), "m^2"},
		{"fractional", units.Metre.Pow(0.5), "m^0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dim.String())
		})
	}
}

func TestParse(t *testing.T) {
	volt, ok := units.Lookup("volt")
	require.True(t, ok)

	tests := []struct {
		input string
		want  units.Dimension
	}{
		{"metre", units.Metre},
		{"m", units.Metre},
		{"1", units.Dimensionless},
		{"volt / second", volt.Div(units.Second)},
		{"m * s**-2", units.Metre.Div(units.Second.Pow(2))},
		{"m / s", units.Metre.Div(units.Second)},
		{"kg * m**2 / s**2", units.Kilogram.Mul(units.Metre.Pow(2)).Div(units.Second.Pow(2))},
		{"1 / second", units.Second.Pow(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := units.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown unit", "furlong"},
		{"addition not allowed", "m + s"},
		{"variable exponent", "m**x"},
		{"unparseable", "m //"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := units.Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestNamesSortedAndResolvable(t *testing.T) {
	names := units.Names()
	require.NotEmpty(t, names)

	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
	for _, name := range names {
		_, ok := units.Lookup(name)
		assert.True(t, ok, "name %q must resolve", name)
	}
}
