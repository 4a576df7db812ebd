package ast

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/dimcheck/pkg/token"
)

// Render reconstructs source text for an expression tree.
// The output is used for diagnostics, so it favors readability:
// parentheses are inserted only where precedence requires them.
func Render(e Expr) string {
	var sb strings.Builder
	render(&sb, e, 0)
	return sb.String()
}

// Operator precedence levels, loosest to tightest.
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precCompare
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

func exprPrec(e Expr) int {
	switch n := e.(type) {
	case *BoolOp:
		if n.Op == token.OR {
			return precOr
		}
		return precAnd
	case *Compare:
		return precCompare
	case *BinaryExpr:
		switch n.Op {
		case token.PLUS, token.MINUS:
			return precAdd
		case token.POW:
			return precPow
		default:
			return precMul
		}
	case *UnaryExpr:
		if n.Op == token.NOT {
			return precNot
		}
		return precUnary
	default:
		return precAtom
	}
}

func render(sb *strings.Builder, e Expr, parent int) {
	prec := exprPrec(e)
	if prec < parent {
		sb.WriteString("(")
		defer sb.WriteString(")")
	}

	switch n := e.(type) {
	case *NumberLit:
		if n.Raw != "" {
			sb.WriteString(n.Raw)
		} else {
			sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
	case *BoolLit:
		if n.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case *Ident:
		sb.WriteString(n.Name)
	case *UnaryExpr:
		sb.WriteString(n.Op.String())
		if n.Op == token.NOT {
			sb.WriteString(" ")
		}
		render(sb, n.Operand, prec)
	case *BinaryExpr:
		// Power is right-associative, the rest left-associative.
		if n.Op == token.POW {
			render(sb, n.Left, prec+1)
			sb.WriteString(n.Op.String())
			render(sb, n.Right, prec)
		} else {
			render(sb, n.Left, prec)
			sb.WriteString(" ")
			sb.WriteString(n.Op.String())
			sb.WriteString(" ")
			render(sb, n.Right, prec+1)
		}
	case *BoolOp:
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteString(" ")
				sb.WriteString(n.Op.String())
				sb.WriteString(" ")
			}
			render(sb, v, prec+1)
		}
	case *Compare:
		render(sb, n.Left, prec+1)
		for i, op := range n.Ops {
			sb.WriteString(" ")
			sb.WriteString(op.String())
			sb.WriteString(" ")
			render(sb, n.Comparators[i], prec+1)
		}
	case *Call:
		sb.WriteString(n.Func)
		sb.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			render(sb, arg, precNone)
		}
		if n.StarArgs != nil {
			if len(n.Args) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("*")
			render(sb, n.StarArgs, precNone)
		}
		for i, kw := range n.Keywords {
			if i > 0 || len(n.Args) > 0 || n.StarArgs != nil {
				sb.WriteString(", ")
			}
			sb.WriteString(kw.Name)
			sb.WriteString("=")
			render(sb, kw.Value, precNone)
		}
		sb.WriteString(")")
	}
}
