package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{CARET, 3},
		{STAR, 2},
		{SLASH, 2},
		{PLUS, 1},
		{MINUS, 1},
		{EQUAL, -1},
		{LEFT_PAREN, -1},
		{IDENTIFIER, -1},
		{SEMICOLON, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Precedence(), tt.kind.String())
		assert.Equal(t, tt.want > 0, tt.kind.IsOperator(), tt.kind.String())
	}
}

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, LET, LookupIdent("let"))
	assert.Equal(t, MUT, LookupIdent("mut"))
	assert.Equal(t, FUNC, LookupIdent("func"))
	assert.Equal(t, NONE, LookupIdent("none"))
	assert.Equal(t, TRUE, LookupIdent("true"))
	assert.Equal(t, IDENTIFIER, LookupIdent("lets"))
	assert.Equal(t, IDENTIFIER, LookupIdent("Func"))
	assert.Len(t, Keywords(), 9)
}

func TestLookupPunct(t *testing.T) {
	k, ok := LookupPunct('^')
	assert.True(t, ok)
	assert.Equal(t, CARET, k)

	_, ok = LookupPunct('#')
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "`=`", EQUAL.Describe())
	assert.Equal(t, "end of input", EOF.Describe())
	assert.Equal(t, "identifier", IDENTIFIER.Describe())
	assert.Equal(t, "identifier `foo`", Token{Kind: IDENTIFIER, Literal: "foo"}.Describe())
	assert.Equal(t, "`...`", Token{Kind: ELLIPSIS}.Describe())
	assert.Equal(t, "RETURN", RETURN.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestKeywordClassification(t *testing.T) {
	assert.True(t, LET.IsKeyword())
	assert.True(t, RETURN.IsKeyword())
	assert.True(t, NONE.IsKeyword())
	assert.False(t, IDENTIFIER.IsKeyword())
	assert.False(t, CARET.IsKeyword())
	assert.True(t, FLOAT.IsLiteral())
	assert.False(t, TRUE.IsLiteral())
}
