package check

import (
	"fmt"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/token"
	"github.com/leapstack-labs/dimcheck/pkg/units"
)

// ExprDimensions determines the physical dimension of an expression tree,
// validating every operator and function call against its operand
// dimensions. It is the primary validation entry point: the first
// violation found aborts the whole analysis.
func ExprDimensions(e ast.Expr, vars Table) (units.Dimension, error) {
	switch n := e.(type) {
	case *ast.BoolLit:
		return units.Dimensionless, nil

	case *ast.Ident:
		if entry, ok := vars[n.Name]; ok {
			switch v := entry.(type) {
			case *Function:
				return units.Dimensionless, &SyntaxError{
					Message: fmt.Sprintf("%s was used like a variable/constant, but it is a function", n.Name),
				}
			case *Variable:
				return v.Dimensions, nil
			}
		}
		if n.Name == "True" || n.Name == "False" {
			return units.Dimensionless, nil
		}
		return units.Dimensionless, &UnknownIdentifierError{Name: n.Name}

	case *ast.NumberLit:
		return units.Dimensionless, nil

	case *ast.BoolOp:
		// Each operand must be internally consistent; its own dimension
		// is discarded because the chain yields a boolean.
		for _, v := range n.Values {
			if _, err := ExprDimensions(v, vars); err != nil {
				return units.Dimensionless, err
			}
		}
		return units.Dimensionless, nil

	case *ast.Compare:
		return compareDimensions(n, vars)

	case *ast.Call:
		return callDimensions(n, vars)

	case *ast.BinaryExpr:
		return binaryDimensions(n, vars)

	case *ast.UnaryExpr:
		// The operand is validated even when the result is fixed.
		u, err := ExprDimensions(n.Operand, vars)
		if err != nil {
			return units.Dimensionless, err
		}
		if n.Op == token.NOT {
			return units.Dimensionless, nil
		}
		// Arithmetic negation preserves the operand's dimension.
		return u, nil

	default:
		return units.Dimensionless, &SyntaxError{Message: "unsupported operation"}
	}
}

// compareDimensions checks a comparison chain: every adjacent pair of
// operands must share a dimension; the chain itself yields a boolean.
func compareDimensions(n *ast.Compare, vars Table) (units.Dimension, error) {
	subexprs := make([]ast.Expr, 0, len(n.Comparators)+1)
	subexprs = append(subexprs, n.Left)
	subexprs = append(subexprs, n.Comparators...)

	dims := make([]units.Dimension, len(subexprs))
	for i, sub := range subexprs {
		d, err := ExprDimensions(sub, vars)
		if err != nil {
			return units.Dimensionless, err
		}
		dims[i] = d
	}

	for i := 0; i < len(dims)-1; i++ {
		if !dims[i].Equal(dims[i+1]) {
			return units.Dimensionless, &DimensionMismatchError{
				Context:   "comparison of expressions with different dimensions",
				LeftExpr:  ast.Render(subexprs[i]),
				Left:      dims[i],
				RightExpr: ast.Render(subexprs[i+1]),
				Right:     dims[i+1],
			}
		}
	}

	return units.Dimensionless, nil
}

// callDimensions validates a function call against its descriptor and
// determines the result dimension from the descriptor's return rule.
func callDimensions(n *ast.Call, vars Table) (units.Dimension, error) {
	if len(n.Keywords) > 0 {
		return units.Dimensionless, &SyntaxError{Message: "keyword arguments are not supported"}
	}
	if n.StarArgs != nil {
		return units.Dimensionless, &SyntaxError{Message: "variable number of arguments is not supported"}
	}

	entry, ok := vars[n.Func]
	if !ok {
		return units.Dimensionless, &UnknownFunctionError{Name: n.Func}
	}
	f, isFn := entry.(*Function)
	if !isFn || f.Args == nil || f.Return == nil {
		return units.Dimensionless, &UnknownFunctionError{
			Name:   n.Func,
			Reason: "does not specify how it deals with units",
		}
	}

	if len(n.Args) != len(f.Args) {
		return units.Dimensionless, &ArgumentCountError{
			Function: n.Func,
			Got:      len(n.Args),
			Want:     len(f.Args),
		}
	}

	for idx, arg := range n.Args {
		spec := f.Args[idx]
		switch spec.Kind {
		case ArgAny:
			continue

		case ArgBoolean:
			b, err := IsBoolean(arg, vars)
			if err != nil {
				return units.Dimensionless, err
			}
			if !b {
				return units.Dimensionless, &ArgumentTypeError{
					Function: n.Func,
					Index:    idx + 1,
					Expr:     ast.Render(arg),
				}
			}

		case ArgDim:
			argDim, err := ExprDimensions(arg, vars)
			if err != nil {
				return units.Dimensionless, err
			}
			if !argDim.Equal(spec.Dimensions) {
				return units.Dimensionless, &DimensionMismatchError{
					Context:  fmt.Sprintf("argument %d for function %s does not have the correct dimensions", idx+1, n.Func),
					LeftExpr: ast.Render(arg),
					Left:     argDim,
					Right:    spec.Dimensions,
				}
			}
		}
	}

	switch f.Return.Kind {
	case ReturnBoolean:
		return units.Dimensionless, nil

	case ReturnFixed:
		return f.Return.Dimensions, nil

	default:
		// Computed rule: invoke with the dimensions of all (validated)
		// arguments, in call order.
		argDims := make([]units.Dimension, len(n.Args))
		for i, arg := range n.Args {
			d, err := ExprDimensions(arg, vars)
			if err != nil {
				return units.Dimensionless, err
			}
			argDims[i] = d
		}
		result, err := f.Return.Compute(argDims)
		if err != nil {
			return units.Dimensionless, fmt.Errorf("return dimensions of function %q: %w", n.Func, err)
		}
		return result, nil
	}
}

// binaryDimensions applies the dimensional rules for arithmetic binary
// operators.
func binaryDimensions(n *ast.BinaryExpr, vars Table) (units.Dimension, error) {
	left, err := ExprDimensions(n.Left, vars)
	if err != nil {
		return units.Dimensionless, err
	}
	right, err := ExprDimensions(n.Right, vars)
	if err != nil {
		return units.Dimensionless, err
	}

	switch n.Op {
	case token.PLUS, token.MINUS, token.PERCENT:
		if !left.Equal(right) {
			return units.Dimensionless, &DimensionMismatchError{
				Context: fmt.Sprintf("cannot determine dimensions for %s %s %s",
					ast.Render(n.Left), n.Op, ast.Render(n.Right)),
				LeftExpr:  ast.Render(n.Left),
				Left:      left,
				RightExpr: ast.Render(n.Right),
				Right:     right,
			}
		}
		return left, nil

	case token.STAR:
		return left.Mul(right), nil

	case token.SLASH:
		return left.Div(right), nil

	case token.POW:
		if left.IsDimensionless() && right.IsDimensionless() {
			return units.Dimensionless, nil
		}
		// A dimensional base needs a statically-known exponent.
		exp, err := EvalConstant(n.Right, vars)
		if err != nil {
			return units.Dimensionless, err
		}
		return left.Pow(exp), nil

	default:
		return units.Dimensionless, &SyntaxError{Message: fmt.Sprintf("unsupported operation %s", n.Op)}
	}
}
