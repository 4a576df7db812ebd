package check_test

import (
	"testing"

	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalConstantExpression(t *testing.T) {
	vars := testTable()

	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"2 ** 3", 8},
		{"7 % 4", 3},
		{"10 / 4", 2.5},
		{"-3 + 1", -2},
		{"n * 3", 6}, // n is a constant scalar with value 2
		{"True", 1},
		{"False", 0},
		{"n ** 2", 4},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := check.EvalConstantExpression(tt.expr, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalConstantErrors(t *testing.T) {
	vars := testTable()

	tests := []struct {
		name string
		expr string
	}{
		{"non-constant variable", "x"},
		{"boolean combination", "ok and done"},
		{"comparison", "1 < 2"},
		{"function call", "rand()"},
		{"logical not", "not True"},
		{"unknown identifier", "who"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := check.EvalConstantExpression(tt.expr, vars)
			assert.Error(t, err)
		})
	}
}

func TestEvalConstantNonConstantKind(t *testing.T) {
	vars := testTable()

	_, err := check.EvalConstantExpression("x", vars)
	require.Error(t, err)

	var serr *check.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "not constant")
}

func TestEvalConstantUnknownIdentifierKind(t *testing.T) {
	_, err := check.EvalConstantExpression("who", check.Table{})
	require.Error(t, err)

	var uerr *check.UnknownIdentifierError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "who", uerr.Name)
}

func TestEvalConstantNonScalar(t *testing.T) {
	vars := check.Table{
		"arr": &check.Variable{Constant: true, Scalar: false},
	}

	_, err := check.EvalConstantExpression("arr", vars)
	require.Error(t, err)

	var serr *check.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "not scalar")
}
