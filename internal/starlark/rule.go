package starlark

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/pkg/units"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Rule is a compiled return-dimension rule for one registered function.
// A Rule is safe for concurrent use; each evaluation borrows a thread
// from the shared pool.
type Rule struct {
	name string
	expr string
	pool *ThreadPool
}

// defaultPool is shared by all rules so threads are reused across
// concurrent equation checks.
var defaultPool = NewThreadPool(8)

// NewRule validates and wraps a rule expression. The expression is
// parsed eagerly so configuration errors surface at load time, not on
// the first call.
func NewRule(name, expr string) (*Rule, error) {
	if _, err := syntax.ParseExpr(name+".star", expr, 0); err != nil { //nolint:staticcheck // SA1019: will migrate to FileOptions later
		return nil, &RuleError{Rule: name, Expr: expr, Message: err.Error()}
	}
	return &Rule{name: name, expr: expr, pool: defaultPool}, nil
}

// Expr returns the rule's source expression.
func (r *Rule) Expr() string {
	return r.expr
}

// Compute evaluates the rule against the argument dimensions, in call
// order, and returns the result dimension.
func (r *Rule) Compute(dims []units.Dimension) (units.Dimension, error) {
	thread := r.pool.Get(r.name)
	defer r.pool.Put(thread)

	globals := Predeclared(DimensionsToStarlark(dims))
	value, err := starlark.Eval(thread, r.name, r.expr, globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return units.Dimensionless, &RuleError{Rule: r.name, Expr: r.expr, Message: err.Error()}
	}

	result, err := DimensionFromStarlark(value)
	if err != nil {
		return units.Dimensionless, &RuleError{Rule: r.name, Expr: r.expr, Message: err.Error()}
	}
	return result, nil
}

// RuleError represents a rule that failed to parse or evaluate.
type RuleError struct {
	Rule    string
	Expr    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule for %q: error evaluating %q: %s", e.Rule, e.Expr, e.Message)
}
