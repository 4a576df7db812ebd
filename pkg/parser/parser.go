// Package parser turns equation expression source text into an AST.
//
// The grammar is a small arithmetic/boolean expression language:
// `and`/`or`/`not`, chained comparisons (`0 <= x < N`), the arithmetic
// operators `+ - * / % **` with right-associative power, numeric and
// boolean literals, identifiers, and function calls.
package parser

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/token"
)

// Expression precedence levels, loosest binding first.
const (
	precedenceNone = iota
	precedenceOr
	precedenceAnd
	precedenceNot
	precedenceComparison
	precedenceAddition
	precedenceMultiply
	precedenceUnary
	precedencePower
)

// Parser parses equation expressions using precedence climbing.
type Parser struct {
	lexer *Lexer
	token token.Token
	peek  token.Token
	err   *ParseError
}

// Parse parses a single expression and requires the whole input to be
// consumed. It returns the first error encountered.
func Parse(input string) (ast.Expr, error) {
	p := &Parser{lexer: NewLexer(input)}
	// Prime current and peek tokens.
	p.nextToken()
	p.nextToken()

	expr := p.parseExpression()
	if p.err != nil {
		return nil, p.err
	}
	if p.token.Type != token.EOF {
		p.addError(fmt.Sprintf("unexpected token %s", p.token.Type))
		return nil, p.err
	}
	return expr, nil
}

// nextToken advances the token stream.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// addError records the first parse error at the current position.
func (p *Parser) addError(msg string) {
	if p.err == nil {
		p.err = &ParseError{Pos: p.token.Pos, Message: msg}
	}
}

// expect consumes the current token if it matches, else records an error.
func (p *Parser) expect(t token.TokenType) {
	if p.token.Type != t {
		p.addError(fmt.Sprintf("unexpected token %s, expected %s", p.token.Type, t))
		return
	}
	p.nextToken()
}

// parseExpression parses an expression at the loosest precedence.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(precedenceNone + 1)
}

// parseExpressionWithPrecedence implements precedence climbing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			break
		}

		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// infixPrecedence returns the precedence of the token as an infix
// operator, or precedenceNone if it is not one.
func infixPrecedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return precedenceOr
	case token.AND:
		return precedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return precedenceComparison
	case token.PLUS, token.MINUS:
		return precedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return precedenceMultiply
	case token.POW:
		return precedencePower
	default:
		return precedenceNone
	}
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() ast.Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precedenceNot)
		return &ast.UnaryExpr{Op: token.NOT, Operand: operand}

	case token.MINUS:
		p.nextToken()
		// Power binds tighter than unary minus: -x**2 is -(x**2).
		operand := p.parseExpressionWithPrecedence(precedenceUnary)
		return &ast.UnaryExpr{Op: token.MINUS, Operand: operand}

	case token.PLUS:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precedenceUnary)
		return &ast.UnaryExpr{Op: token.PLUS, Operand: operand}

	default:
		return p.parsePrimary()
	}
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	switch {
	case p.token.Type == token.AND || p.token.Type == token.OR:
		return p.parseBoolOp(left, prec)

	case token.IsComparison(p.token.Type):
		return p.parseCompare(left)
	}

	op := p.token.Type
	p.nextToken()

	var right ast.Expr
	if op == token.POW {
		// Right-associative: parse the right side at the same level.
		right = p.parseExpressionWithPrecedence(prec)
	} else {
		right = p.parseExpressionWithPrecedence(prec + 1)
	}

	return &ast.BinaryExpr{Left: left, Op: op, Right: right}
}

// parseBoolOp collects an and/or chain into a single node.
// `a and b and c` becomes one BoolOp with three values.
func (p *Parser) parseBoolOp(left ast.Expr, prec int) ast.Expr {
	op := p.token.Type
	values := []ast.Expr{left}

	for p.token.Type == op {
		p.nextToken()
		v := p.parseExpressionWithPrecedence(prec + 1)
		if v == nil {
			return nil
		}
		values = append(values, v)
	}

	return &ast.BoolOp{Op: op, Values: values}
}

// parseCompare collects a comparison chain: x < y <= z.
func (p *Parser) parseCompare(left ast.Expr) ast.Expr {
	var ops []token.TokenType
	var comparators []ast.Expr

	for token.IsComparison(p.token.Type) {
		ops = append(ops, p.token.Type)
		p.nextToken()
		c := p.parseExpressionWithPrecedence(precedenceComparison + 1)
		if c == nil {
			return nil
		}
		comparators = append(comparators, c)
	}

	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators}
}

// parsePrimary parses literals, identifiers, calls, and parentheses.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.token.Type {
	case token.NUMBER:
		raw := p.token.Literal
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.addError(fmt.Sprintf("invalid number literal %q", raw))
			return nil
		}
		p.nextToken()
		return &ast.NumberLit{Value: value, Raw: raw}

	case token.TRUE:
		p.nextToken()
		return &ast.BoolLit{Value: true}

	case token.FALSE:
		p.nextToken()
		return &ast.BoolLit{Value: false}

	case token.IDENT:
		name := p.token.Literal
		if p.peek.Type == token.LPAREN {
			return p.parseCall(name)
		}
		p.nextToken()
		return &ast.Ident{Name: name}

	case token.LPAREN:
		p.nextToken()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr

	case token.EOF:
		p.addError("unexpected end of expression")
		return nil

	default:
		p.addError(fmt.Sprintf("unexpected token %s", p.token.Type))
		return nil
	}
}

// parseCall parses a function call. Keyword and star arguments are
// preserved on the node so the checker can reject them with a useful
// message.
func (p *Parser) parseCall(name string) ast.Expr {
	call := &ast.Call{Func: name}

	p.nextToken() // function name
	p.expect(token.LPAREN)

	for p.token.Type != token.RPAREN && p.token.Type != token.EOF {
		switch {
		case p.token.Type == token.STAR:
			p.nextToken()
			call.StarArgs = p.parseExpression()

		case p.token.Type == token.IDENT && p.peek.Type == token.ASSIGN:
			kw := ast.Keyword{Name: p.token.Literal}
			p.nextToken() // name
			p.nextToken() // =
			kw.Value = p.parseExpression()
			call.Keywords = append(call.Keywords, kw)

		default:
			call.Args = append(call.Args, p.parseExpression())
		}

		if p.err != nil {
			return nil
		}
		if p.token.Type != token.COMMA {
			break
		}
		p.nextToken()
	}

	p.expect(token.RPAREN)
	return call
}
