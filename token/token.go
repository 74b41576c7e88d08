// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	STRING
	NUMBER
	FLOAT
	TRUE
	FALSE
	NONE

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET

	// Separators
	COLON
	SEMICOLON
	DOT
	COMMA
	ELLIPSIS
	AT

	// Operators
	EQUAL
	PLUS
	MINUS
	STAR
	SLASH
	CARET

	// Keywords
	LET
	MUT
	IF
	ELSE
	FUNC
	RETURN
)

var kindNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	FLOAT:         "FLOAT",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NONE:          "NONE",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	COLON:         "COLON",
	SEMICOLON:     "SEMICOLON",
	DOT:           "DOT",
	COMMA:         "COMMA",
	ELLIPSIS:      "ELLIPSIS",
	AT:            "AT",
	EQUAL:         "EQUAL",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	CARET:         "CARET",
	LET:           "LET",
	MUT:           "MUT",
	IF:            "IF",
	ELSE:          "ELSE",
	FUNC:          "FUNC",
	RETURN:        "RETURN",
}

// symbols holds the source spelling of every fixed-text kind.
var symbols = map[Kind]string{
	TRUE:          "true",
	FALSE:         "false",
	NONE:          "none",
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACE:    "{",
	RIGHT_BRACE:   "}",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	COLON:         ":",
	SEMICOLON:     ";",
	DOT:           ".",
	COMMA:         ",",
	ELLIPSIS:      "...",
	AT:            "@",
	EQUAL:         "=",
	PLUS:          "+",
	MINUS:         "-",
	STAR:          "*",
	SLASH:         "/",
	CARET:         "^",
	LET:           "let",
	MUT:           "mut",
	IF:            "if",
	ELSE:          "else",
	FUNC:          "func",
	RETURN:        "return",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Symbol returns the fixed source text of k, or "" for kinds that carry a payload.
func (k Kind) Symbol() string {
	return symbols[k]
}

// Describe renders k the way diagnostics name it: "`=`", "identifier", "end of input".
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case IDENTIFIER:
		return "identifier"
	case STRING:
		return "string literal"
	case NUMBER:
		return "integer literal"
	case FLOAT:
		return "float literal"
	case ILLEGAL:
		return "illegal token"
	}
	if s, ok := symbols[k]; ok {
		return "`" + s + "`"
	}
	return k.String()
}

// Precedence is the binary binding strength of k. Kinds that are not binary
// operators report -1.
func (k Kind) Precedence() int {
	switch k {
	case CARET:
		return 3
	case STAR, SLASH:
		return 2
	case PLUS, MINUS:
		return 1
	default:
		return -1
	}
}

func (k Kind) IsOperator() bool {
	return k.Precedence() > 0
}

func (k Kind) IsKeyword() bool {
	return k >= LET || k == TRUE || k == FALSE || k == NONE
}

func (k Kind) IsLiteral() bool {
	return k == STRING || k == NUMBER || k == FLOAT
}

type Position struct {
	Line   int // 1-based
	Column int // 0-based
	Offset int // 0-based byte offset in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind     Kind
	Literal  string
	Position Position
	Length   int // source characters spanned, quotes and separators included
}

// Text returns the literal payload, falling back to the kind's fixed spelling.
func (t Token) Text() string {
	if t.Literal != "" {
		return t.Literal
	}
	return t.Kind.Symbol()
}

// Describe names the token for diagnostics, including its payload when present.
func (t Token) Describe() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("identifier `%s`", t.Literal)
	case NUMBER, FLOAT:
		return fmt.Sprintf("%s `%s`", t.Kind.Describe(), t.Literal)
	case STRING:
		return fmt.Sprintf("string literal %q", t.Literal)
	}
	return t.Kind.Describe()
}

func (t Token) String() string {
	if t.Literal != "" {
		return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Literal, t.Position)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Position)
}
