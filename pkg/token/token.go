// Package token defines the lexical tokens of the equation expression
// language.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	POW     // **
	EQ      // ==
	NE      // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	ASSIGN  // = (only valid in keyword arguments)
	COMMA   // ,
	LPAREN  // (
	RPAREN  // )

	// Keywords
	AND
	OR
	NOT
	TRUE
	FALSE
)

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	POW:     "**",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	ASSIGN:  "=",
	COMMA:   ",",
	LPAREN:  "(",
	RPAREN:  ")",

	AND:   "and",
	OR:    "or",
	NOT:   "not",
	TRUE:  "True",
	FALSE: "False",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// keywords maps keyword spellings to their token types.
// Lookup is case-sensitive: the boolean literals are capitalized while the
// logical operators are lowercase, matching the equation grammar.
var keywords = map[string]TokenType{
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"True":  TRUE,
	"False": FALSE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= FALSE
}

// IsComparison returns true if the token type is a relational operator.
func IsComparison(t TokenType) bool {
	return t == EQ || t == NE || t == LT || t == GT || t == LE || t == GE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
