package parser_test

import (
	"testing"

	"github.com/leapstack-labs/dimcheck/pkg/ast"
	"github.com/leapstack-labs/dimcheck/pkg/parser"
	"github.com/leapstack-labs/dimcheck/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokens(t *testing.T) {
	tokens := parser.Tokenize("v + 1.5e3 ** -2 <= x_0 and not done")

	var types []token.TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []token.TokenType{
		token.IDENT, token.PLUS, token.NUMBER, token.POW, token.MINUS,
		token.NUMBER, token.LE, token.IDENT, token.AND, token.NOT,
		token.IDENT, token.EOF,
	}, types)
}

func TestLexerComparisonOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.TokenType
	}{
		{"==", token.EQ},
		{"!=", token.NE},
		{"<", token.LT},
		{"<=", token.LE},
		{">", token.GT},
		{">=", token.GE},
		{"=", token.ASSIGN},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := parser.Tokenize(tt.input)
			require.Len(t, tokens, 2) // operator + EOF
			assert.Equal(t, tt.want, tokens[0].Type)
		})
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	expr, err := parser.Parse("a + b * c")
	require.NoError(t, err)

	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, bin.Op)

	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, right.Op)
}

func TestParsePowerRightAssociative(t *testing.T) {
	expr, err := parser.Parse("a ** b ** c")
	require.NoError(t, err)

	// a ** (b ** c)
	outer, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.POW, outer.Op)
	assert.Equal(t, &ast.Ident{Name: "a"}, outer.Left)

	inner, ok := outer.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.POW, inner.Op)
}

func TestParseUnaryMinusBindsLooserThanPower(t *testing.T) {
	expr, err := parser.Parse("-x ** 2")
	require.NoError(t, err)

	// -(x ** 2)
	un, ok := expr.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, un.Op)

	_, ok = un.Operand.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParseComparisonChain(t *testing.T) {
	expr, err := parser.Parse("0 <= x < N")
	require.NoError(t, err)

	cmp, ok := expr.(*ast.Compare)
	require.True(t, ok)
	assert.Equal(t, []token.TokenType{token.LE, token.LT}, cmp.Ops)
	require.Len(t, cmp.Comparators, 2)
	assert.Equal(t, &ast.Ident{Name: "N"}, cmp.Comparators[1])
}

func TestParseBoolOpChain(t *testing.T) {
	expr, err := parser.Parse("a and b and c")
	require.NoError(t, err)

	op, ok := expr.(*ast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, token.AND, op.Op)
	assert.Len(t, op.Values, 3)
}

func TestParseAndOrPrecedence(t *testing.T) {
	expr, err := parser.Parse("a and b or c")
	require.NoError(t, err)

	// (a and b) or c
	or, ok := expr.(*ast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, token.OR, or.Op)
	require.Len(t, or.Values, 2)

	and, ok := or.Values[0].(*ast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
}

func TestParseBooleanLiterals(t *testing.T) {
	expr, err := parser.Parse("True")
	require.NoError(t, err)
	assert.Equal(t, &ast.BoolLit{Value: true}, expr)

	expr, err = parser.Parse("False")
	require.NoError(t, err)
	assert.Equal(t, &ast.BoolLit{Value: false}, expr)
}

func TestParseCall(t *testing.T) {
	expr, err := parser.Parse("clip(x, 0, x_max)")
	require.NoError(t, err)

	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "clip", call.Func)
	assert.Len(t, call.Args, 3)
	assert.Empty(t, call.Keywords)
	assert.Nil(t, call.StarArgs)
}

func TestParseCallKeywordArgs(t *testing.T) {
	expr, err := parser.Parse("f(x, n=2)")
	require.NoError(t, err)

	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 1)
	require.Len(t, call.Keywords, 1)
	assert.Equal(t, "n", call.Keywords[0].Name)
}

func TestParseCallStarArgs(t *testing.T) {
	expr, err := parser.Parse("f(*xs)")
	require.NoError(t, err)

	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.NotNil(t, call.StarArgs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"dangling operator", "x +"},
		{"unbalanced paren", "(x + y"},
		{"trailing garbage", "x y"},
		{"lone equals", "x = y"},
		{"illegal char", "x @ y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			require.Error(t, err)

			var perr *parser.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseNumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{"3.25", 3.25},
		{"1e3", 1000},
		{"2.5E-2", 0.025},
		{".5", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parser.Parse(tt.input)
			require.NoError(t, err)

			num, ok := expr.(*ast.NumberLit)
			require.True(t, ok)
			assert.Equal(t, tt.want, num.Value)
		})
	}
}
