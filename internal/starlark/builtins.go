package starlark

import (
	"github.com/leapstack-labs/dimcheck/pkg/units"
	"go.starlark.net/starlark"
)

// Predeclared returns the builtin globals available to every rule
// expression, combined with the per-call "args" list.
func Predeclared(args *starlark.List) starlark.StringDict {
	return starlark.StringDict{
		"args":          args,
		"dimensionless": starlark.NewBuiltin("dimensionless", builtinDimensionless),
		"mul":           starlark.NewBuiltin("mul", builtinMul),
		"div":           starlark.NewBuiltin("div", builtinDiv),
		"power":         starlark.NewBuiltin("power", builtinPower),
	}
}

// dimensionless() -> the zero exponent vector.
func builtinDimensionless(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return DimensionToStarlark(units.Dimensionless), nil
}

// mul(a, b) -> the exponent vector of the product of two quantities.
func builtinMul(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var av, bv starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "a", &av, "b", &bv); err != nil {
		return nil, err
	}
	a, err := DimensionFromStarlark(av)
	if err != nil {
		return nil, err
	}
	b, err := DimensionFromStarlark(bv)
	if err != nil {
		return nil, err
	}
	return DimensionToStarlark(a.Mul(b)), nil
}

// div(a, b) -> the exponent vector of the quotient of two quantities.
func builtinDiv(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var av, bv starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "a", &av, "b", &bv); err != nil {
		return nil, err
	}
	a, err := DimensionFromStarlark(av)
	if err != nil {
		return nil, err
	}
	b, err := DimensionFromStarlark(bv)
	if err != nil {
		return nil, err
	}
	return DimensionToStarlark(a.Div(b)), nil
}

// power(a, n) -> the exponent vector of a quantity raised to n.
func builtinPower(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var av starlark.Value
	var n float64
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "a", &av, "n", &n); err != nil {
		return nil, err
	}
	a, err := DimensionFromStarlark(av)
	if err != nil {
		return nil, err
	}
	return DimensionToStarlark(a.Pow(n)), nil
}
