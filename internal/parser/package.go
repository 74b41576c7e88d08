package parser

import (
	"uma/internal/ast"
	"uma/token"
)

// ParseResult keeps the token sequence next to the statements built from it,
// for consumers that colour or index the source.
type ParseResult struct {
	Tokens     []token.Token
	Statements []ast.Stmt
	End        token.Position
}

// ParseSource tokenizes and parses a whole compilation unit. The error is a
// *ScanError or a *ParseError.
func ParseSource(source string) ([]ast.Stmt, error) {
	result, err := ParseSourceWithTokens(source)
	if err != nil {
		return nil, err
	}
	return result.Statements, nil
}

// ParseSourceWithTokens is ParseSource that also returns the tokens. On a
// parse error the tokens are still returned; on a scan error there are none.
func ParseSourceWithTokens(source string) (*ParseResult, error) {
	scanner := NewScanner(source)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Tokens: tokens, End: scanner.End()}

	stmts, err := NewParser(tokens, scanner.End()).Parse()
	if err != nil {
		return result, err
	}

	result.Statements = stmts
	return result, nil
}
