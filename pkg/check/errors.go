package check

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/pkg/units"
)

// SyntaxError represents an expression that is structurally invalid for
// the requested analysis: a boolean chain with a numeric operand, a
// non-constant exponent, an unsupported operator, or a call shape the
// checker does not accept.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// UnknownIdentifierError represents an identifier that is absent from the
// variable table and is not a boolean literal token.
type UnknownIdentifierError struct {
	Name string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

// UnknownFunctionError represents a callee that is absent from the
// variable table, or present without the descriptor fields the checker
// needs.
type UnknownFunctionError struct {
	Name   string
	Reason string // optional detail, e.g. a missing descriptor field
}

func (e *UnknownFunctionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("function %q %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("unknown function %q", e.Name)
}

// DimensionMismatchError represents two sub-expressions that are required
// to share a dimension but do not. It always carries the rendered
// sub-expressions and both dimensions for diagnostics.
type DimensionMismatchError struct {
	Context   string // what was being checked
	LeftExpr  string
	Left      units.Dimension
	RightExpr string // empty when comparing against a required dimension
	Right     units.Dimension
}

func (e *DimensionMismatchError) Error() string {
	if e.RightExpr == "" {
		return fmt.Sprintf("%s: expression %q has dimension (%s), but should be (%s)",
			e.Context, e.LeftExpr, e.Left, e.Right)
	}
	return fmt.Sprintf("%s: expression %q has dimension (%s), while expression %q has dimension (%s)",
		e.Context, e.LeftExpr, e.Left, e.RightExpr, e.Right)
}

// ArgumentCountError represents a call whose argument count does not
// match the function descriptor.
type ArgumentCountError struct {
	Function string
	Got      int
	Want     int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("function %q was called with %d arguments, needs %d", e.Function, e.Got, e.Want)
}

// ArgumentTypeError represents an argument that was expected to be
// boolean but is not.
type ArgumentTypeError struct {
	Function string
	Index    int // 1-based argument position
	Expr     string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("argument %d for function %q was expected to be a boolean value, but is %q",
		e.Index, e.Function, e.Expr)
}
