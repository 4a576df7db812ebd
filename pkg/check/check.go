// Package check validates model equations for dimensional consistency
// and infers boolean-typed expressions.
//
// Three analysis passes walk the same expression grammar: IsBoolean
// determines whether a tree yields a boolean value, EvalConstant reduces
// a purely-constant subtree to a number (used to resolve exponents), and
// ExprDimensions computes the physical dimension of a tree while
// validating every operator and call. Each pass is a pure function of
// (tree, variable table); there is no shared state, and concurrent calls
// are safe as long as the table is not mutated underneath them.
package check

import (
	"github.com/leapstack-labs/dimcheck/pkg/parser"
	"github.com/leapstack-labs/dimcheck/pkg/units"
)

// IsBooleanExpression parses source text and reports whether the
// resulting expression yields a boolean value.
func IsBooleanExpression(expr string, vars Table) (bool, error) {
	tree, err := parser.Parse(expr)
	if err != nil {
		return false, err
	}
	return IsBoolean(tree, vars)
}

// ParseExpressionDimensions parses source text and returns the physical
// dimension of the resulting expression, validating its consistency.
func ParseExpressionDimensions(expr string, vars Table) (units.Dimension, error) {
	tree, err := parser.Parse(expr)
	if err != nil {
		return units.Dimensionless, err
	}
	return ExprDimensions(tree, vars)
}

// EvalConstantExpression parses source text and computes its constant
// numeric value.
func EvalConstantExpression(expr string, vars Table) (float64, error) {
	tree, err := parser.Parse(expr)
	if err != nil {
		return 0, err
	}
	return EvalConstant(tree, vars)
}
