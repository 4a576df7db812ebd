package check

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/token"
)

// IsBoolean reports whether an expression tree yields a boolean value.
//
// An and/or chain with a non-boolean operand is a hard error rather than
// a false result: the author clearly intended a boolean expression (e.g.
// `x < y and z` with numeric z) and silently treating it as numeric would
// hide the mistake.
func IsBoolean(e ast.Expr, vars Table) (bool, error) {
	switch n := e.(type) {
	case *ast.BoolOp:
		for _, v := range n.Values {
			b, err := IsBoolean(v, vars)
			if err != nil {
				return false, err
			}
			if !b {
				return false, &SyntaxError{
					Message: fmt.Sprintf("expression ought to be boolean but is not: %q", ast.Render(v)),
				}
			}
		}
		return true, nil

	case *ast.BoolLit:
		return true, nil

	case *ast.Ident:
		if entry, ok := vars[n.Name]; ok {
			if v, isVar := entry.(*Variable); isVar {
				return v.IsBoolean, nil
			}
			// A function name used as a bare value is not boolean; the
			// dimension checker rejects this shape with a better message.
			return false, nil
		}
		// Unknown identifiers are non-boolean unless they spell a boolean
		// literal; the dimension checker is the pass that rejects them.
		return n.Name == "True" || n.Name == "False", nil

	case *ast.Call:
		entry, ok := vars[n.Func]
		if !ok {
			return false, &UnknownFunctionError{Name: n.Func}
		}
		f, isFn := entry.(*Function)
		if !isFn {
			return false, &UnknownFunctionError{Name: n.Func}
		}
		return f.ReturnsBoolean, nil

	case *ast.Compare:
		return true, nil

	case *ast.UnaryExpr:
		return n.Op == token.NOT, nil

	default:
		return false, nil
	}
}
