package check

import "github.com/leapstack-labs/dimcheck/pkg/units"

// identity returns the first argument's dimension unchanged.
func identity(args []units.Dimension) (units.Dimension, error) {
	return args[0], nil
}

// DefaultFunctions returns descriptors for the builtin math functions a
// model equation may call. The table is freshly allocated; callers merge
// it with their variable entries.
func DefaultFunctions() Table {
	t := make(Table)

	// Transcendental functions require a dimensionless argument and
	// yield a dimensionless result.
	for _, name := range []string{
		"sin", "cos", "tan", "sinh", "cosh", "tanh",
		"arcsin", "arccos", "arctan",
		"exp", "log", "log10",
	} {
		t[name] = &Function{
			Args:   []ArgSpec{DimArg(units.Dimensionless)},
			Return: FixedReturn(units.Dimensionless),
		}
	}

	// Functions that preserve their argument's dimension.
	for _, name := range []string{"abs", "ceil", "floor"} {
		t[name] = &Function{
			Args:   []ArgSpec{AnyArg()},
			Return: ComputedReturn(identity),
		}
	}

	// sqrt halves the exponents: sqrt(m^2) is m.
	t["sqrt"] = &Function{
		Args: []ArgSpec{AnyArg()},
		Return: ComputedReturn(func(args []units.Dimension) (units.Dimension, error) {
			return args[0].Pow(0.5), nil
		}),
	}

	// sign strips the dimension of any argument.
	t["sign"] = &Function{
		Args:   []ArgSpec{AnyArg()},
		Return: FixedReturn(units.Dimensionless),
	}

	// clip(x, low, high) keeps x's dimension.
	t["clip"] = &Function{
		Args:   []ArgSpec{AnyArg(), AnyArg(), AnyArg()},
		Return: ComputedReturn(identity),
	}

	// int converts a boolean to 0 or 1.
	t["int"] = &Function{
		Args:   []ArgSpec{BooleanArg()},
		Return: FixedReturn(units.Dimensionless),
	}

	return t
}
