package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var UmaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`, Action: nil},
		// Never matched directly; keywordMapper retypes reserved identifiers.
		{Name: "Keyword", Pattern: `let|mut|if|else|func|return|true|false|none`, Action: nil},

		// Numeric literals; `_` separators are stripped when printed
		{Name: "Float", Pattern: `[0-9][0-9_]*\.[0-9_]*`, Action: nil},
		{Name: "Integer", Pattern: `[0-9][0-9_]*`, Action: nil},

		{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`, Action: nil},

		{Name: "Ellipsis", Pattern: `\.\.\.`, Action: nil},
		{Name: "Punctuation", Pattern: `[-+*/^=(){}\[\]:;.,@]`, Action: nil},

		{Name: "Whitespace", Pattern: `\s+`, Action: nil},
	},
})

var keywords = map[string]bool{
	"let": true, "mut": true, "if": true, "else": true, "func": true,
	"return": true, "true": true, "false": true, "none": true,
}

var keywordType = UmaLexer.Symbols()["Keyword"]

// keywordMapper turns identifiers spelled like a keyword into Keyword
// tokens. Matching whole identifiers first keeps `letä` a name.
var keywordMapper = participle.Map(func(tok lexer.Token) (lexer.Token, error) {
	if keywords[tok.Value] {
		tok.Type = keywordType
	}
	return tok, nil
}, "Ident")
