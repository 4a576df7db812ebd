// Package starlark evaluates user-defined return-dimension rules for
// registered functions. A rule is a Starlark expression over the global
// "args", a list holding one exponent vector per call argument; it must
// evaluate to an exponent vector for the result.
package starlark

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/pkg/units"
	"go.starlark.net/starlark"
)

// DimensionToStarlark converts an exponent vector to a Starlark list of
// floats, one element per base quantity.
func DimensionToStarlark(d units.Dimension) *starlark.List {
	elems := make([]starlark.Value, len(d))
	for i, exp := range d {
		elems[i] = starlark.Float(exp)
	}
	return starlark.NewList(elems)
}

// DimensionsToStarlark converts the argument dimensions of a call into
// the "args" global, in call order.
func DimensionsToStarlark(dims []units.Dimension) *starlark.List {
	elems := make([]starlark.Value, len(dims))
	for i, d := range dims {
		elems[i] = DimensionToStarlark(d)
	}
	return starlark.NewList(elems)
}

// DimensionFromStarlark converts a rule result back into an exponent
// vector. Lists and tuples of numbers are accepted; the length must
// match the number of base quantities.
func DimensionFromStarlark(v starlark.Value) (units.Dimension, error) {
	var d units.Dimension

	seq, ok := v.(starlark.Indexable)
	if !ok {
		return d, fmt.Errorf("expected a list of %d exponents, got %s", len(d), v.Type())
	}
	if seq.Len() != len(d) {
		return d, fmt.Errorf("expected %d exponents, got %d", len(d), seq.Len())
	}

	for i := 0; i < seq.Len(); i++ {
		f, err := floatFromStarlark(seq.Index(i))
		if err != nil {
			return d, fmt.Errorf("exponent %d: %w", i, err)
		}
		d[i] = f
	}
	return d, nil
}

func floatFromStarlark(v starlark.Value) (float64, error) {
	switch val := v.(type) {
	case starlark.Float:
		return float64(val), nil
	case starlark.Int:
		f, _ := starlark.AsFloat(val)
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", v.Type())
	}
}
