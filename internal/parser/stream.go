package parser

import "uma/token"

// TokenStream is the consumable token sequence shared by every parsing
// routine. It never writes to the slice it was built from.
type TokenStream struct {
	tokens []token.Token
	end    token.Position
}

// NewTokenStream wraps tokens; end positions the synthetic EOF token used in
// errors once the stream is exhausted.
func NewTokenStream(tokens []token.Token, end token.Position) *TokenStream {
	return &TokenStream{tokens: tokens, end: end}
}

// Peek returns the first remaining token, or nil.
func (ts *TokenStream) Peek() *token.Token {
	return ts.Get(0)
}

// Get looks offset tokens ahead without consuming anything.
func (ts *TokenStream) Get(offset int) *token.Token {
	if offset < 0 || offset >= len(ts.tokens) {
		return nil
	}
	return &ts.tokens[offset]
}

// Consume removes and returns the first token. Call sites only consume after
// a successful Peek, so an empty stream here is a parser bug.
func (ts *TokenStream) Consume() token.Token {
	if len(ts.tokens) == 0 {
		panic("parser: consume on exhausted token stream")
	}
	tok := ts.tokens[0]
	ts.tokens = ts.tokens[1:]
	return tok
}

// TryExpect consumes the next token only when it has the given kind.
func (ts *TokenStream) TryExpect(kind token.Kind) (token.Token, bool) {
	if next := ts.Peek(); next != nil && next.Kind == kind {
		return ts.Consume(), true
	}
	return token.Token{}, false
}

// Expect is TryExpect with a mismatch reported as an ExpectedToken error.
func (ts *TokenStream) Expect(kind token.Kind) (token.Token, error) {
	if tok, ok := ts.TryExpect(kind); ok {
		return tok, nil
	}

	found := ts.Current()
	return token.Token{}, newParseError(ExpectedToken, found,
		"expected %s, found %s", kind.Describe(), found.Describe())
}

// Check reports whether the next token has the given kind.
func (ts *TokenStream) Check(kind token.Kind) bool {
	next := ts.Peek()
	return next != nil && next.Kind == kind
}

// Current returns the next token, or the synthetic EOF token.
func (ts *TokenStream) Current() token.Token {
	if next := ts.Peek(); next != nil {
		return *next
	}
	return token.Token{Kind: token.EOF, Position: ts.end}
}

func (ts *TokenStream) Len() int {
	return len(ts.tokens)
}

func (ts *TokenStream) Empty() bool {
	return len(ts.tokens) == 0
}
