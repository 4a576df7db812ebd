package check_test

import (
	"testing"

	"github.com/leapstack-labs/dimcheck/pkg/check"
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPureNumericExpressionsAreDimensionless(t *testing.T) {
	vars := check.Table{}

	exprs := []string{
		"1",
		"2 + 3 * 4",
		"(1 - 2) / 4",
		"2 ** 10",
		"-3 % 2",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			dim, err := check.ParseExpressionDimensions(expr, vars)
			require.NoError(t, err)
			assert.True(t, dim.IsDimensionless())
		})
	}
}

func TestAdditionRequiresEqualDimensions(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("x + y", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)

	_, err = check.ParseExpressionDimensions("x + z", vars)
	require.Error(t, err)

	var merr *check.DimensionMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "x", merr.LeftExpr)
	assert.Equal(t, units.Metre, merr.Left)
	assert.Equal(t, "z", merr.RightExpr)
	assert.Equal(t, units.Second, merr.Right)
}

func TestMultiplicationAndDivision(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("x * z", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre.Mul(units.Second), dim)

	dim, err = check.ParseExpressionDimensions("x / z", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre.Div(units.Second), dim)
}

func TestPowerWithLiteralExponent(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("x ** 2", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre.Pow(2), dim)

	// Constant variables work as exponents too.
	dim, err = check.ParseExpressionDimensions("x ** n", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre.Pow(2), dim)

	// Negative exponents invert.
	dim, err = check.ParseExpressionDimensions("z ** -1", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Second.Pow(-1), dim)
}

func TestPowerDimensionlessShortCircuit(t *testing.T) {
	vars := testTable()

	// Both sides dimensionless: no constant evaluation required, so a
	// non-constant dimensionless exponent is fine.
	vars["q"] = &check.Variable{} // dimensionless, not constant
	dim, err := check.ParseExpressionDimensions("2 ** q", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())
}

func TestPowerNonConstantExponentIsError(t *testing.T) {
	vars := testTable()

	// y is dimensional and non-constant, so x ** y cannot be resolved.
	_, err := check.ParseExpressionDimensions("x ** y", vars)
	require.Error(t, err)
}

func TestComparisonChain(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("x < y", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	vars["w"] = &check.Variable{Dimensions: units.Metre}
	dim, err = check.ParseExpressionDimensions("x < y < w", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	_, err = check.ParseExpressionDimensions("x < y < z", vars)
	require.Error(t, err)

	var merr *check.DimensionMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "y", merr.LeftExpr)
	assert.Equal(t, "z", merr.RightExpr)
}

func TestBooleanCombinationValidatesOperands(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("x < y and ok", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	// The operand dimensions are discarded, but each operand must still
	// be internally consistent.
	_, err = check.ParseExpressionDimensions("x < y and (x + z) < y", vars)
	require.Error(t, err)

	var merr *check.DimensionMismatchError
	assert.ErrorAs(t, err, &merr)
}

func TestUnaryOperators(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("-x", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)

	dim, err = check.ParseExpressionDimensions("not ok", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	// The operand of `not` is still validated.
	_, err = check.ParseExpressionDimensions("not (x + z)", vars)
	require.Error(t, err)
}

func TestIdentifierCases(t *testing.T) {
	vars := testTable()

	dim, err := check.ParseExpressionDimensions("True", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	_, err = check.ParseExpressionDimensions("nobody", vars)
	require.Error(t, err)

	var uerr *check.UnknownIdentifierError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "nobody", uerr.Name)

	// A function name used as a plain value is a structural error.
	_, err = check.ParseExpressionDimensions("rand + 1", vars)
	require.Error(t, err)

	var serr *check.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "function")
}

func TestFunctionCallArgumentChecking(t *testing.T) {
	vars := testTable()
	vars["f"] = &check.Function{
		Args:   []check.ArgSpec{check.DimArg(units.Metre)},
		Return: check.FixedReturn(units.Second),
	}

	dim, err := check.ParseExpressionDimensions("f(x)", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Second, dim)

	_, err = check.ParseExpressionDimensions("f(z)", vars)
	require.Error(t, err)

	var merr *check.DimensionMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "z", merr.LeftExpr)
	assert.Equal(t, units.Second, merr.Left)
	assert.Equal(t, units.Metre, merr.Right)
}

func TestFunctionCallArgumentCount(t *testing.T) {
	vars := testTable()

	_, err := check.ParseExpressionDimensions("is_active(x, y)", vars)
	require.Error(t, err)

	var cerr *check.ArgumentCountError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Got)
	assert.Equal(t, 1, cerr.Want)
}

func TestFunctionCallBooleanArgument(t *testing.T) {
	vars := testTable()
	vars["select"] = &check.Function{
		Args:   []check.ArgSpec{check.BooleanArg(), check.AnyArg(), check.AnyArg()},
		Return: check.ComputedReturn(func(args []units.Dimension) (units.Dimension, error) {
			return args[1], nil
		}),
	}

	dim, err := check.ParseExpressionDimensions("select(x < y, x, y)", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)

	_, err = check.ParseExpressionDimensions("select(z, x, y)", vars)
	require.Error(t, err)

	var terr *check.ArgumentTypeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 1, terr.Index)
	assert.Equal(t, "select", terr.Function)
	assert.Equal(t, "z", terr.Expr)
}

func TestFunctionCallComputedReturn(t *testing.T) {
	vars := testTable()
	vars["sqrt"] = check.DefaultFunctions()["sqrt"]

	// x*x is m^2, sqrt halves the exponents back to m.
	dim, err := check.ParseExpressionDimensions("sqrt(x*x)", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)
}

func TestFunctionCallShapeRejected(t *testing.T) {
	vars := testTable()

	for _, expr := range []string{"is_active(x=1)", "is_active(*xs)"} {
		t.Run(expr, func(t *testing.T) {
			_, err := check.ParseExpressionDimensions(expr, vars)
			require.Error(t, err)

			var serr *check.SyntaxError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestFunctionWithoutUnitContract(t *testing.T) {
	vars := testTable()
	vars["opaque"] = &check.Function{ReturnsBoolean: true}

	_, err := check.ParseExpressionDimensions("opaque()", vars)
	require.Error(t, err)

	var ferr *check.UnknownFunctionError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Error(), "units")
}

func TestUnknownFunctionCall(t *testing.T) {
	vars := testTable()

	_, err := check.ParseExpressionDimensions("mystery(x)", vars)
	require.Error(t, err)

	var ferr *check.UnknownFunctionError
	require.ErrorAs(t, err, &ferr)
	assert.Empty(t, ferr.Reason)
}

func TestDefaultFunctions(t *testing.T) {
	vars := testTable().Merge(check.DefaultFunctions())

	dim, err := check.ParseExpressionDimensions("clip(x, x, y)", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)

	dim, err = check.ParseExpressionDimensions("abs(-x)", vars)
	require.NoError(t, err)
	assert.Equal(t, units.Metre, dim)

	dim, err = check.ParseExpressionDimensions("sign(x)", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	dim, err = check.ParseExpressionDimensions("int(x < y)", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())

	// exp requires a dimensionless argument.
	_, err = check.ParseExpressionDimensions("exp(x)", vars)
	require.Error(t, err)

	dim, err = check.ParseExpressionDimensions("exp(x / y)", vars)
	require.NoError(t, err)
	assert.True(t, dim.IsDimensionless())
}

// The membrane-equation scenario: a leaky integrate-and-fire update must
// come out in volt/second.
func TestMembraneEquationScenario(t *testing.T) {
	volt, ok := units.Lookup("volt")
	require.True(t, ok)
	siemens, ok := units.Lookup("siemens")
	require.True(t, ok)
	farad, ok := units.Lookup("farad")
	require.True(t, ok)
	amp, ok := units.Lookup("amp")
	require.True(t, ok)

	vars := check.Table{
		"v":   &check.Variable{Dimensions: volt},
		"E_L": &check.Variable{Dimensions: volt},
		"g_L": &check.Variable{Dimensions: siemens},
		"C_m": &check.Variable{Dimensions: farad},
		"I":   &check.Variable{Dimensions: amp},
	}

	dim, err := check.ParseExpressionDimensions("(g_L*(E_L - v) + I)/C_m", vars)
	require.NoError(t, err)
	assert.Equal(t, volt.Div(units.Second), dim)
}
