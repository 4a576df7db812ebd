package units

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/parser"
	"github.com/leapstack-labs/dimcheck/pkg/token"
)

// named maps unit names and symbols to their dimensions. Scale prefixes
// are deliberately absent: mV and volt share a dimension, and the checker
// only ever compares dimensions.
var named = map[string]Dimension{
	// Base units
	"metre":    Metre,
	"meter":    Metre,
	"m":        Metre,
	"kilogram": Kilogram,
	"kg":       Kilogram,
	"gram":     Kilogram,
	"second":   Second,
	"s":        Second,
	"ampere":   Ampere,
	"amp":      Ampere,
	"A":        Ampere,
	"kelvin":   Kelvin,
	"K":        Kelvin,
	"mole":     Mole,
	"mol":      Mole,
	"candela":  Candela,
	"cd":       Candela,

	// Derived units
	"radian":  Dimensionless,
	"hertz":   {0, 0, -1, 0, 0, 0, 0},
	"Hz":      {0, 0, -1, 0, 0, 0, 0},
	"newton":  {1, 1, -2, 0, 0, 0, 0},
	"N":       {1, 1, -2, 0, 0, 0, 0},
	"pascal":  {-1, 1, -2, 0, 0, 0, 0},
	"Pa":      {-1, 1, -2, 0, 0, 0, 0},
	"joule":   {2, 1, -2, 0, 0, 0, 0},
	"J":       {2, 1, -2, 0, 0, 0, 0},
	"watt":    {2, 1, -3, 0, 0, 0, 0},
	"W":       {2, 1, -3, 0, 0, 0, 0},
	"coulomb": {0, 0, 1, 1, 0, 0, 0},
	"C":       {0, 0, 1, 1, 0, 0, 0},
	"volt":    {2, 1, -3, -1, 0, 0, 0},
	"V":       {2, 1, -3, -1, 0, 0, 0},
	"ohm":     {2, 1, -3, -2, 0, 0, 0},
	"farad":   {-2, -1, 4, 2, 0, 0, 0},
	"F":       {-2, -1, 4, 2, 0, 0, 0},
	"siemens": {-2, -1, 3, 2, 0, 0, 0},
	"S":       {-2, -1, 3, 2, 0, 0, 0},
	"weber":   {2, 1, -2, -1, 0, 0, 0},
	"Wb":      {2, 1, -2, -1, 0, 0, 0},
	"tesla":   {0, 1, -2, -1, 0, 0, 0},
	"T":       {0, 1, -2, -1, 0, 0, 0},
	"henry":   {2, 1, -2, -2, 0, 0, 0},
	"H":       {2, 1, -2, -2, 0, 0, 0},
	"litre":   {3, 0, 0, 0, 0, 0, 0},
	"liter":   {3, 0, 0, 0, 0, 0, 0},
	"molar":   {-3, 0, 0, 0, 1, 0, 0},
}

// Lookup resolves a unit name or symbol to its dimension.
func Lookup(name string) (Dimension, bool) {
	d, ok := named[name]
	return d, ok
}

// Names returns all registered unit names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse evaluates a unit expression such as "volt / second" or
// "m * s**-2" over the named-unit registry and returns its dimension.
// Numeric literals are dimensionless, so "1" and "1/second" work.
func Parse(input string) (Dimension, error) {
	expr, err := parser.Parse(input)
	if err != nil {
		return Dimensionless, fmt.Errorf("invalid unit expression %q: %w", input, err)
	}
	return evalUnit(expr)
}

// evalUnit evaluates the restricted unit grammar: names, numbers, and the
// operators * / **.
func evalUnit(e ast.Expr) (Dimension, error) {
	switch n := e.(type) {
	case *ast.Ident:
		d, ok := Lookup(n.Name)
		if !ok {
			return Dimensionless, fmt.Errorf("unknown unit %q", n.Name)
		}
		return d, nil

	case *ast.NumberLit:
		return Dimensionless, nil

	case *ast.BinaryExpr:
		left, err := evalUnit(n.Left)
		if err != nil {
			return Dimensionless, err
		}
		switch n.Op {
		case token.STAR:
			right, err := evalUnit(n.Right)
			if err != nil {
				return Dimensionless, err
			}
			return left.Mul(right), nil
		case token.SLASH:
			right, err := evalUnit(n.Right)
			if err != nil {
				return Dimensionless, err
			}
			return left.Div(right), nil
		case token.POW:
			exp, err := evalExponent(n.Right)
			if err != nil {
				return Dimensionless, err
			}
			return left.Pow(exp), nil
		default:
			return Dimensionless, fmt.Errorf("operator %s not allowed in unit expressions", n.Op)
		}

	case *ast.UnaryExpr:
		return Dimensionless, fmt.Errorf("operator %s not allowed in unit expressions", n.Op)

	default:
		return Dimensionless, fmt.Errorf("unsupported construct in unit expression %q", ast.Render(e))
	}
}

// evalExponent evaluates a literal (possibly negated) numeric exponent.
func evalExponent(e ast.Expr) (float64, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return n.Value, nil
	case *ast.UnaryExpr:
		if n.Op == token.MINUS {
			v, err := evalExponent(n.Operand)
			if err != nil {
				return 0, err
			}
			return -v, nil
		}
	}
	return 0, fmt.Errorf("unit exponent must be a numeric constant, got %q", ast.Render(e))
}
