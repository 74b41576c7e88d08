package token

var keywords = map[string]Kind{
	"let":    LET,
	"mut":    MUT,
	"if":     IF,
	"else":   ELSE,
	"func":   FUNC,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
	"none":   NONE,
}

// LookupIdent reports the keyword kind for ident, or IDENTIFIER.
func LookupIdent(ident string) Kind {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// Keywords returns the keyword spellings, used for editor completion.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for _, k := range []Kind{LET, MUT, IF, ELSE, FUNC, RETURN, TRUE, FALSE, NONE} {
		out = append(out, k.Symbol())
	}
	return out
}

var punctuation = map[rune]Kind{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	'[': LEFT_BRACKET,
	']': RIGHT_BRACKET,
	':': COLON,
	';': SEMICOLON,
	'.': DOT,
	',': COMMA,
	'@': AT,
	'=': EQUAL,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
}

// LookupPunct maps a single character to its punctuation or operator kind.
func LookupPunct(c rune) (Kind, bool) {
	k, ok := punctuation[c]
	return k, ok
}
