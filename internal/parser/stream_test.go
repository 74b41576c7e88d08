package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uma/token"
)

func prepareStream(t *testing.T, input string) *TokenStream {
	t.Helper()
	s := NewScanner(input)
	tokens, err := s.ScanTokens()
	require.NoError(t, err)
	return NewTokenStream(tokens, s.End())
}

func TestStreamPeekAndGet(t *testing.T) {
	ts := prepareStream(t, "x = f(1)")

	require.NotNil(t, ts.Peek())
	assert.Equal(t, token.IDENTIFIER, ts.Peek().Kind)
	assert.Equal(t, token.EQUAL, ts.Get(1).Kind)
	assert.Equal(t, token.RIGHT_PAREN, ts.Get(5).Kind)
	assert.Nil(t, ts.Get(6))
	assert.Nil(t, ts.Get(-1))
	assert.Equal(t, 6, ts.Len(), "peeking consumes nothing")
}

func TestStreamConsume(t *testing.T) {
	ts := prepareStream(t, "a b")

	assert.Equal(t, "a", ts.Consume().Literal)
	assert.Equal(t, "b", ts.Consume().Literal)
	assert.True(t, ts.Empty())
	assert.Nil(t, ts.Peek())
	assert.Panics(t, func() { ts.Consume() })
}

func TestStreamTryExpect(t *testing.T) {
	ts := prepareStream(t, "let x")

	_, ok := ts.TryExpect(token.MUT)
	assert.False(t, ok)
	assert.Equal(t, 2, ts.Len(), "mismatch leaves the stream untouched")

	tok, ok := ts.TryExpect(token.LET)
	assert.True(t, ok)
	assert.Equal(t, token.LET, tok.Kind)
	assert.Equal(t, 1, ts.Len())
}

func TestStreamExpectMismatch(t *testing.T) {
	ts := prepareStream(t, "let = 1")
	ts.Consume()

	_, err := ts.Expect(token.IDENTIFIER)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, ExpectedToken, parseErr.Kind)
	assert.Equal(t, token.EQUAL, parseErr.Token.Kind)
	assert.Equal(t, token.Position{Line: 1, Column: 4, Offset: 4}, parseErr.Position())
	assert.Equal(t, "expected identifier, found `=`", parseErr.Message)
	assert.Equal(t, 2, ts.Len())
}

func TestStreamExpectAtEnd(t *testing.T) {
	ts := prepareStream(t, "let x")
	ts.Consume()
	ts.Consume()

	_, err := ts.Expect(token.EQUAL)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, token.EOF, parseErr.Token.Kind)
	assert.Equal(t, token.Position{Line: 1, Column: 5, Offset: 5}, parseErr.Token.Position)
	assert.Equal(t, "expected `=`, found end of input", parseErr.Message)
	assert.Equal(t, "1:5: expected `=`, found end of input", parseErr.Error())
}

func TestStreamDoesNotMutateInput(t *testing.T) {
	tokens := []token.Token{{Kind: token.IDENTIFIER, Literal: "a"}, {Kind: token.SEMICOLON}}
	ts := NewTokenStream(tokens, token.Position{})
	ts.Consume()
	ts.Consume()

	assert.Equal(t, "a", tokens[0].Literal)
	assert.Len(t, tokens, 2)
}
