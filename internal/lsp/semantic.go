package lsp

import (
	"unicode/utf8"

	"uma/token"
)

// Define the set of supported semantic token types (used for syntax highlighting)
var SemanticTokenTypes = []string{
	"keyword",
	"function",
	"variable",
	"parameter",
	"type",
	"number",
	"string",
	"operator",
	"decorator",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// paramScope holds the parameters of the function whose body opened at depth.
type paramScope struct {
	depth  int
	params map[string]bool
}

// collectSemanticTokens classifies the token stream. Identifiers are
// resolved from their neighbours: declarations by the keyword before them,
// calls by the `(` after them, parameters by the enclosing function.
func collectSemanticTokens(source string, toks []token.Token) []SemanticToken {
	var (
		out      []SemanticToken
		scopes   []paramScope
		pending  map[string]bool
		inParams bool
		depth    int
	)

	kindAt := func(i int) token.Kind {
		if i < 0 || i >= len(toks) {
			return token.EOF
		}
		return toks[i].Kind
	}

	isParam := func(name string) bool {
		for i := len(scopes) - 1; i >= 0; i-- {
			if scopes[i].params[name] {
				return true
			}
		}
		return false
	}

	for i, tok := range toks {
		typ, mods := "", 0

		switch {
		case tok.Kind == token.EOF:
			continue
		case tok.Kind.IsKeyword():
			typ = "keyword"
		case tok.Kind == token.STRING:
			typ = "string"
		case tok.Kind.IsLiteral():
			typ = "number"
		case tok.Kind.IsOperator() || tok.Kind == token.EQUAL || tok.Kind == token.ELLIPSIS:
			typ = "operator"
		case tok.Kind == token.IDENTIFIER:
			switch prev := kindAt(i - 1); {
			case prev == token.FUNC:
				typ, mods = "function", modDeclaration
			case prev == token.AT:
				typ = "decorator"
			case inParams && prev == token.COLON:
				typ = "type"
			case inParams:
				typ, mods = "parameter", modDeclaration
				pending[tok.Literal] = true
			case prev == token.LET:
				typ, mods = "variable", modDeclaration|modReadonly
			case prev == token.MUT:
				typ, mods = "variable", modDeclaration
			case kindAt(i+1) == token.LEFT_PAREN:
				typ = "function"
			case isParam(tok.Literal):
				typ = "parameter"
			default:
				typ = "variable"
			}
		}

		switch tok.Kind {
		case token.LEFT_PAREN:
			if kindAt(i-1) == token.IDENTIFIER && kindAt(i-2) == token.FUNC {
				inParams = true
				pending = make(map[string]bool)
			}
		case token.RIGHT_PAREN:
			if inParams {
				inParams = false
				if kindAt(i+1) != token.LEFT_BRACE {
					pending = nil
				}
			}
		case token.LEFT_BRACE:
			depth++
			if pending != nil {
				scopes = append(scopes, paramScope{depth: depth, params: pending})
				pending = nil
			}
		case token.RIGHT_BRACE:
			if n := len(scopes); n > 0 && scopes[n-1].depth == depth {
				scopes = scopes[:n-1]
			}
			depth--
		}

		if typ == "" {
			continue
		}
		out = append(out, makeToken(tok.Position, tokenLength(source, tok), typ, mods))
	}

	return out
}

func makeToken(pos token.Position, length int, tokenType string, mods int) SemanticToken {
	return SemanticToken{
		Line:           uint32(pos.Line - 1), // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: mods,
	}
}

// tokenLength measures tok in the source text, in runes. Semantic tokens
// cannot span lines, so strings are re-read and clipped.
func tokenLength(source string, tok token.Token) int {
	if tok.Kind == token.STRING {
		return stringLength(source[tok.Position.Offset:])
	}
	return tok.Length
}

// stringLength spans a quoted literal up to its closing delimiter. A literal
// that runs past its line is clipped at the newline.
func stringLength(rest string) int {
	delim, size := utf8.DecodeRuneInString(rest)
	n := 1
	escaped := false
	for _, r := range rest[size:] {
		if r == '\n' {
			return n
		}
		n++
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			return n
		}
	}
	return n
}

// encodeSemanticTokens produces the LSP wire format (delta-line, delta-start compression)
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		} else {
			deltaStart = t.StartChar
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
