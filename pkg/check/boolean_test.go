package check_test

import (
	"testing"

	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable builds a variable table shared by the checker tests.
func testTable() check.Table {
	return check.Table{
		"x":    &check.Variable{Dimensions: units.Metre},
		"y":    &check.Variable{Dimensions: units.Metre},
		"z":    &check.Variable{Dimensions: units.Second},
		"n":    &check.Variable{Constant: true, Scalar: true, Value: 2},
		"ok":   &check.Variable{IsBoolean: true},
		"done": &check.Variable{IsBoolean: true},
		"rand": &check.Function{
			Args:   []check.ArgSpec{},
			Return: check.FixedReturn(units.Dimensionless),
		},
		"is_active": &check.Function{
			Args:           []check.ArgSpec{check.AnyArg()},
			Return:         check.BooleanReturn(),
			ReturnsBoolean: true,
		},
	}
}

func TestIsBooleanExpression(t *testing.T) {
	vars := testTable()

	tests := []struct {
		expr string
		want bool
	}{
		{"x < y", true},
		{"x < y < z", true},
		{"ok", true},
		{"x", false},
		{"1.5", false},
		{"True", true},
		{"False", true},
		{"not ok", true},
		{"-x", false},
		{"ok and done", true},
		{"x < y and done", true},
		{"x < y or ok", true},
		{"is_active(x)", true},
		{"rand()", false},
		{"x + y", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := check.IsBooleanExpression(tt.expr, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsBooleanNonBooleanOperandIsError(t *testing.T) {
	vars := testTable()

	// z is numeric, so the chain cannot be boolean: hard error, not false.
	_, err := check.IsBooleanExpression("x < y and z", vars)
	require.Error(t, err)

	var serr *check.SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestIsBooleanUnknownFunction(t *testing.T) {
	vars := testTable()

	_, err := check.IsBooleanExpression("mystery(x)", vars)
	require.Error(t, err)

	var ferr *check.UnknownFunctionError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "mystery", ferr.Name)
}

func TestIsBooleanVariableCalledAsFunction(t *testing.T) {
	vars := testTable()

	// x is a variable, not a function descriptor.
	_, err := check.IsBooleanExpression("x(1)", vars)
	require.Error(t, err)

	var ferr *check.UnknownFunctionError
	assert.ErrorAs(t, err, &ferr)
}

// Unknown identifiers outside the boolean literal tokens are treated as
// non-boolean rather than raising; the dimension checker is the strict
// pass for unknown names.
func TestIsBooleanUnknownIdentifierFallsThrough(t *testing.T) {
	got, err := check.IsBooleanExpression("nobody", check.Table{})
	require.NoError(t, err)
	assert.False(t, got)
}
