package check

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/token"
)

// EvalConstant computes the numeric value of a purely-constant expression
// subtree without a runtime environment. It fails when any sub-expression
// is not a compile-time numeric constant.
//
// The dimension checker uses this to resolve exponents in power
// expressions; it performs no general constant folding beyond that.
func EvalConstant(e ast.Expr, vars Table) (float64, error) {
	switch n := e.(type) {
	case *ast.Ident:
		if entry, ok := vars[n.Name]; ok {
			v, isVar := entry.(*Variable)
			if !isVar || !v.Constant {
				return 0, &SyntaxError{Message: fmt.Sprintf("value %q is not constant", n.Name)}
			}
			if !v.Scalar {
				return 0, &SyntaxError{Message: fmt.Sprintf("value %q is not scalar", n.Name)}
			}
			return v.GetValue(), nil
		}
		switch n.Name {
		case "True":
			return 1.0, nil
		case "False":
			return 0.0, nil
		}
		return 0, &UnknownIdentifierError{Name: n.Name}

	case *ast.BoolLit:
		if n.Value {
			return 1.0, nil
		}
		return 0.0, nil

	case *ast.NumberLit:
		return n.Value, nil

	case *ast.BoolOp, *ast.Compare:
		return 0, &SyntaxError{Message: "cannot determine the numeric value of a boolean operation"}

	case *ast.Call:
		return 0, &SyntaxError{Message: "cannot determine the numeric value of a function call"}

	case *ast.BinaryExpr:
		left, err := EvalConstant(n.Left, vars)
		if err != nil {
			return 0, err
		}
		right, err := EvalConstant(n.Right, vars)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.PLUS:
			return left + right, nil
		case token.MINUS:
			return left - right, nil
		case token.STAR:
			return left * right, nil
		case token.SLASH:
			return left / right, nil
		case token.PERCENT:
			return math.Mod(left, right), nil
		case token.POW:
			return math.Pow(left, right), nil
		default:
			return 0, &SyntaxError{Message: fmt.Sprintf("unsupported operation %s", n.Op)}
		}

	case *ast.UnaryExpr:
		// Validate the operand before inspecting the operator.
		v, err := EvalConstant(n.Operand, vars)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.NOT:
			return 0, &SyntaxError{Message: "cannot determine the numeric value of a boolean operation"}
		case token.MINUS:
			return -v, nil
		default:
			return 0, &SyntaxError{Message: fmt.Sprintf("unknown unary operation %s", n.Op)}
		}

	default:
		return 0, &SyntaxError{Message: "unsupported operation"}
	}
}
