package syntax

import (
	"fmt"
	"math"
	"strconv"
)

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Single-character tokens
	LeftParen  TokenType = iota // (
	RightParen                  // )
	LeftBrace                   // {
	RightBrace                  // }
	Comma                       // ,
	Dot                         // .
	Minus                       // -
	Plus                        // +
	Semicolon                   // ;
	Slash                       // /
	Star                        // *

	// One or two character tokens
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Break
	Class
	Continue
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Eof

	tokenCount
)

// tokenNames maps token types to their rendering in token dumps.
var tokenNames = [...]string{
	LeftParen:  "LEFT_PAREN",
	RightParen: "RIGHT_PAREN",
	LeftBrace:  "LEFT_BRACE",
	RightBrace: "RIGHT_BRACE",
	Comma:      "COMMA",
	Dot:        "DOT",
	Minus:      "MINUS",
	Plus:       "PLUS",
	Semicolon:  "SEMICOLON",
	Slash:      "SLASH",
	Star:       "STAR",

	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",

	Identifier: "IDENTIFIER",
	String:     "STRING",
	Number:     "NUMBER",

	And:      "AND",
	Break:    "BREAK",
	Class:    "CLASS",
	Continue: "CONTINUE",
	Else:     "ELSE",
	False:    "FALSE",
	Fun:      "FUN",
	For:      "FOR",
	If:       "IF",
	Nil:      "NIL",
	Or:       "OR",
	Print:    "PRINT",
	Return:   "RETURN",
	Super:    "SUPER",
	This:     "THIS",
	True:     "TRUE",
	Var:      "VAR",
	While:    "WHILE",

	Eof: "EOF",
}

// String returns the upper-case name of the token type.
func (t TokenType) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// keywords maps reserved words to their token type.
var keywords = map[string]TokenType{
	"and":      And,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"for":      For,
	"fun":      Fun,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"return":   Return,
	"super":    Super,
	"this":     This,
	"true":     True,
	"var":      Var,
	"while":    While,
}

// LookupKeyword returns the token type for the given identifier text.
// Text that is not a reserved word is an Identifier.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return Identifier
}

// Token is a classified unit of source text.
//
// Literal holds a float64 for Number tokens and the unquoted text for
// String tokens; it is nil for every other kind.
type Token struct {
	Kind    TokenType
	Lexeme  string
	Literal any
	Line    int
}

// String renders the token as "TYPE lexeme literal", the format used by
// token dumps. A missing literal renders as "null".
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, FormatLiteral(t.Literal))
}

// FormatLiteral renders a token literal. Numbers with no fractional part
// keep a trailing ".0" so that 42 and 42.5 are distinguishable.
func FormatLiteral(lit any) string {
	switch v := lit.(type) {
	case nil:
		return "null"
	case float64:
		return formatNumber(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(n float64) string {
	if !math.IsInf(n, 0) && !math.IsNaN(n) && n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', 1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Precedence returns the binding strength of a binary operator.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: or
//	2: and
//	3: == !=
//	4: < <= > >=
//	5: + -
//	6: * /
func (t TokenType) Precedence() int {
	switch t {
	case Or:
		return 1
	case And:
		return 2
	case EqualEqual, BangEqual:
		return 3
	case Less, LessEqual, Greater, GreaterEqual:
		return 4
	case Plus, Minus:
		return 5
	case Star, Slash:
		return 6
	}
	return 0
}
