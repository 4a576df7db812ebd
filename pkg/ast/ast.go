// Package ast defines the abstract syntax tree for equation expressions.
//
// Trees are immutable once built: the analysis passes in pkg/check only
// read them, and a single tree may be shared between concurrent checks.
package ast

import "github.com/leapstack-labs/dimcheck/pkg/token"

// Expr represents an expression node.
type Expr interface {
	exprNode()
}

// NumberLit represents a numeric literal.
type NumberLit struct {
	Value float64
	Raw   string // original spelling, kept for rendering
}

func (*NumberLit) exprNode() {}

// BoolLit represents the literals True and False.
type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode() {}

// Ident represents a reference to a named variable or constant.
type Ident struct {
	Name string
}

func (*Ident) exprNode() {}

// UnaryExpr represents a unary operation: not x, -x, +x.
type UnaryExpr struct {
	Op      token.TokenType
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr represents an arithmetic binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// BoolOp represents an and/or chain with two or more operands.
// `a and b and c` parses to a single BoolOp with three values.
type BoolOp struct {
	Op     token.TokenType // token.AND or token.OR
	Values []Expr
}

func (*BoolOp) exprNode() {}

// Compare represents a comparison chain over two or more operands.
// `x < y <= z` parses to Left=x, Ops=[<, <=], Comparators=[y, z].
// Invariant: len(Ops) == len(Comparators) >= 1.
type Compare struct {
	Left        Expr
	Ops         []token.TokenType
	Comparators []Expr
}

func (*Compare) exprNode() {}

// Keyword represents a keyword argument in a call. The checker rejects
// these, but the parser preserves them so diagnostics can name them.
type Keyword struct {
	Name  string
	Value Expr
}

// Call represents a function call.
type Call struct {
	Func     string
	Args     []Expr
	Keywords []Keyword // f(x=1) - rejected by the checker
	StarArgs Expr      // f(*xs) - rejected by the checker
}

func (*Call) exprNode() {}
