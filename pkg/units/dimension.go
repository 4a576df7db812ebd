// Package units provides physical-dimension arithmetic for the checker.
//
// A Dimension is a vector of exponents over the seven SI base quantities.
// Dimensions carry no magnitude: volts and millivolts are the same
// dimension. Equality is exact elementwise comparison with no coercion.
package units

import (
	"math"
	"strconv"
	"strings"
)

// Indices into a Dimension's exponent vector.
const (
	Length = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminance

	numQuantities
)

// baseSymbols holds the SI base unit symbol per quantity, used by String.
var baseSymbols = [numQuantities]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// Dimension is a vector of exponents over the base physical quantities.
// The zero value is dimensionless.
type Dimension [numQuantities]float64

// Dimensionless is the zero dimension vector. It is the dimension of
// numeric literals and of every boolean-valued expression.
var Dimensionless = Dimension{}

// Mul returns the product dimension (exponents add elementwise).
func (d Dimension) Mul(other Dimension) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] + other[i]
	}
	return out
}

// Div returns the quotient dimension (exponents subtract elementwise).
func (d Dimension) Div(other Dimension) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] - other[i]
	}
	return out
}

// Pow returns the dimension raised to the given power.
func (d Dimension) Pow(n float64) Dimension {
	var out Dimension
	for i := range d {
		out[i] = d[i] * n
	}
	return out
}

// Equal reports whether two dimensions match exactly.
func (d Dimension) Equal(other Dimension) bool {
	return d == other
}

// IsDimensionless reports whether all exponents are zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimensionless
}

// String renders the dimension in SI base units, e.g. "m s^-2".
// The dimensionless dimension renders as "1".
func (d Dimension) String() string {
	var parts []string
	for i, exp := range d {
		if exp == 0 {
			continue
		}
		if exp == 1 {
			parts = append(parts, baseSymbols[i])
			continue
		}
		parts = append(parts, baseSymbols[i]+"^"+formatExponent(exp))
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

// formatExponent renders an exponent without a trailing ".0" for whole
// numbers.
func formatExponent(exp float64) string {
	if exp == math.Trunc(exp) {
		return strconv.FormatFloat(exp, 'f', 0, 64)
	}
	return strconv.FormatFloat(exp, 'g', -1, 64)
}

// base returns the dimension with a single unit exponent at index i.
func base(i int) Dimension {
	var d Dimension
	d[i] = 1
	return d
}

// The base dimensions.
var (
	Metre    = base(Length)
	Kilogram = base(Mass)
	Second   = base(Time)
	Ampere   = base(Current)
	Kelvin   = base(Temperature)
	Mole     = base(Amount)
	Candela  = base(Luminance)
)
