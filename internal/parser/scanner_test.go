package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uma/token"
)

func scan(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := NewScanner(input).ScanTokens()
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertScanError(t *testing.T, input, message string, line, column int) {
	t.Helper()
	tokens, err := NewScanner(input).ScanTokens()
	assert.Nil(t, tokens)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Contains(t, scanErr.Message, message)
	assert.Equal(t, line, scanErr.Position.Line, "line")
	assert.Equal(t, column, scanErr.Position.Column, "column")
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "let mut if else func return true false none customIdent _under score9"
	expected := []token.Kind{
		token.LET, token.MUT, token.IF, token.ELSE, token.FUNC, token.RETURN,
		token.TRUE, token.FALSE, token.NONE,
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER,
	}

	tokens := scan(t, input)
	assert.Equal(t, expected, kinds(tokens))

	assert.Empty(t, tokens[0].Literal, "keywords carry no payload")
	assert.Equal(t, "customIdent", tokens[9].Literal)
	assert.Equal(t, "_under", tokens[10].Literal)
	assert.Equal(t, "score9", tokens[11].Literal)
}

func TestLexFunction(t *testing.T) {
	tokens := scan(t, `
            func name_of_function(argument1, argument2) {
                argument1 + argument2
            }
        `)

	assert.Equal(t, []token.Kind{
		token.FUNC, token.IDENTIFIER, token.LEFT_PAREN, token.IDENTIFIER, token.COMMA,
		token.IDENTIFIER, token.RIGHT_PAREN, token.LEFT_BRACE, token.IDENTIFIER,
		token.PLUS, token.IDENTIFIER, token.RIGHT_BRACE,
	}, kinds(tokens))
	assert.Equal(t, "name_of_function", tokens[1].Literal)
}

func TestLexVariable(t *testing.T) {
	tokens := scan(t, `let x = "Hello, World!";`)

	assert.Equal(t, []token.Kind{
		token.LET, token.IDENTIFIER, token.EQUAL, token.STRING, token.SEMICOLON,
	}, kinds(tokens))
	assert.Equal(t, "Hello, World!", tokens[3].Literal)
}

func TestNumbers(t *testing.T) {
	tokens := scan(t, "1_000_000; 3.14156 42 0.5")

	assert.Equal(t, []token.Kind{
		token.NUMBER, token.SEMICOLON, token.FLOAT, token.NUMBER, token.FLOAT,
	}, kinds(tokens))
	assert.Equal(t, "1000000", tokens[0].Literal)
	assert.Equal(t, "3.14156", tokens[2].Literal)
	assert.Equal(t, "42", tokens[3].Literal)
	assert.Equal(t, "0.5", tokens[4].Literal)
}

func TestNumberSeparatorsAreStripped(t *testing.T) {
	inputs := []string{
		"1_0", "1__0", "9_", "1_000.000_1", "12_34_56", "0_._5", "3_.1_4", "7.", "100_000_000",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := scan(t, input)
			require.Len(t, tokens, 1)

			want := strings.ReplaceAll(input, "_", "")
			assert.Equal(t, want, tokens[0].Literal)
			if strings.Contains(input, ".") {
				assert.Equal(t, token.FLOAT, tokens[0].Kind)
				assert.Equal(t, 1, strings.Count(tokens[0].Literal, "."))
			} else {
				assert.Equal(t, token.NUMBER, tokens[0].Kind)
			}
		})
	}
}

func TestMoreThanOneDecimalPoint(t *testing.T) {
	assertScanError(t, "1.2.3", "more than one decimal point", 1, 3)
	assertScanError(t, "let x = 1_0.0_0.1;", "more than one decimal point", 1, 15)
}

func TestStrings(t *testing.T) {
	tokens := scan(t, `"hello" 'world'`)

	assert.Equal(t, []token.Kind{token.STRING, token.STRING}, kinds(tokens))
	assert.Equal(t, "hello", tokens[0].Literal)
	assert.Equal(t, "world", tokens[1].Literal)
}

func TestStringEscapes(t *testing.T) {
	tokens := scan(t, `'Hello\n\\n,\'"" World!!'`)

	require.Len(t, tokens, 1)
	assert.Equal(t, "Hello\n\\n,'\"\" World!!", tokens[0].Literal)

	tokens = scan(t, `"tab\there \q"`)
	assert.Equal(t, "tab\there q", tokens[0].Literal)
}

func TestUnterminatedString(t *testing.T) {
	assertScanError(t, `let s = "unterminated`, "unterminated string literal", 1, 8)
	assertScanError(t, `"ends in escape\`, "unterminated string literal", 1, 0)
}

func TestUnexpectedCharacter(t *testing.T) {
	assertScanError(t, "let x = 1;\nlet y = #;", "unexpected character '#'", 2, 8)
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `(){}[]:;.,=+-*/^@...`
	expected := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.LEFT_BRACKET, token.RIGHT_BRACKET, token.COLON, token.SEMICOLON,
		token.DOT, token.COMMA, token.EQUAL, token.PLUS, token.MINUS, token.STAR,
		token.SLASH, token.CARET, token.AT, token.ELLIPSIS,
	}

	assert.Equal(t, expected, kinds(scan(t, input)))
}

func TestEllipsisAndDots(t *testing.T) {
	assert.Equal(t, []token.Kind{
		token.LEFT_PAREN, token.IDENTIFIER, token.COMMA, token.ELLIPSIS, token.RIGHT_PAREN,
	}, kinds(scan(t, "(a, ...)")))

	assert.Equal(t, []token.Kind{token.DOT, token.DOT}, kinds(scan(t, "..")))
	assert.Equal(t, []token.Kind{token.ELLIPSIS, token.DOT}, kinds(scan(t, "....")))
}

func TestTokenPositions(t *testing.T) {
	tokens := scan(t, "let x\n  = 1;")

	positions := []token.Position{
		{Line: 1, Column: 0, Offset: 0},
		{Line: 1, Column: 4, Offset: 4},
		{Line: 2, Column: 2, Offset: 8},
		{Line: 2, Column: 4, Offset: 10},
		{Line: 2, Column: 5, Offset: 11},
	}

	require.Len(t, tokens, len(positions))
	for i, pos := range positions {
		assert.Equal(t, pos, tokens[i].Position, "token %d", i)
	}
}

func TestScannerEnd(t *testing.T) {
	s := NewScanner("f(\n")
	_, err := s.ScanTokens()
	require.NoError(t, err)
	assert.Equal(t, token.Position{Line: 2, Column: 0, Offset: 3}, s.End())
}

func TestWhitespaceOnly(t *testing.T) {
	tokens, err := NewScanner(" \t\r\n ").ScanTokens()
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestScanErrorReason(t *testing.T) {
	tests := []struct {
		input  string
		reason ScanErrorReason
	}{
		{"1.2.3", MalformedNumber},
		{`"open`, UnterminatedString},
		{"x = $", UnexpectedCharacter},
	}

	for _, tt := range tests {
		_, err := NewScanner(tt.input).ScanTokens()
		var scanErr *ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, tt.reason, scanErr.Reason, tt.input)
	}
}

func TestTokenLengthCountsSourceCharacters(t *testing.T) {
	tokens := scan(t, `let ünï = "a\nb" + 1_000 + 2.5_0; f(...)`)

	lengths := make([]int, len(tokens))
	for i, tok := range tokens {
		lengths[i] = tok.Length
	}
	assert.Equal(t, []int{3, 3, 1, 6, 1, 5, 1, 5, 1, 1, 1, 3, 1}, lengths)
}
