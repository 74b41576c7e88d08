package parser

import (
	"uma/internal/ast"
	"uma/token"
)

// Parser builds statements from a token sequence. It stops at the first
// error; there is no recovery or resynchronization.
type Parser struct {
	tokens *TokenStream
}

func NewParser(tokens []token.Token, end token.Position) *Parser {
	return &Parser{tokens: NewTokenStream(tokens, end)}
}

// Parse consumes the whole stream and returns the top-level statements.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var program []ast.Stmt

	for !p.tokens.Empty() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		program = append(program, stmt)
	}

	return program, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	next := p.tokens.Peek()
	if next == nil {
		return nil, p.unexpected("expected a statement")
	}

	switch next.Kind {
	case token.LET:
		return p.variable()
	case token.FUNC:
		return p.function()
	case token.RETURN:
		return p.returnStmt()
	case token.SEMICOLON:
		p.tokens.Consume()
		return &ast.Empty{Pos: next.Position}, nil
	case token.IDENTIFIER:
		if following := p.tokens.Get(1); following != nil && following.Kind == token.EQUAL {
			return p.assignment()
		}
	}

	return p.expressionStmt()
}

// variable parses `let [mut] name = expr [;]`.
func (p *Parser) variable() (ast.Stmt, error) {
	if _, err := p.tokens.Expect(token.LET); err != nil {
		return nil, err
	}

	_, mutable := p.tokens.TryExpect(token.MUT)

	name, err := p.tokens.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.tokens.Expect(token.EQUAL); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	p.tokens.TryExpect(token.SEMICOLON)

	return &ast.VariableDecl{
		Name:    name.Literal,
		Value:   value,
		Mutable: mutable,
	}, nil
}

// assignment parses `name = expr ;`. The terminator is required here.
func (p *Parser) assignment() (ast.Stmt, error) {
	name, err := p.tokens.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.tokens.Expect(token.EQUAL); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.tokens.Expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Assignment{Name: name.Literal, Value: value}, nil
}

// returnStmt parses `return expr [;]`.
func (p *Parser) returnStmt() (ast.Stmt, error) {
	if _, err := p.tokens.Expect(token.RETURN); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	p.tokens.TryExpect(token.SEMICOLON)

	return &ast.Return{Value: value}, nil
}

func (p *Parser) expressionStmt() (ast.Stmt, error) {
	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	// A call has already taken its own terminator.
	if _, isCall := value.(*ast.Call); !isCall {
		p.tokens.TryExpect(token.SEMICOLON)
	}

	return ast.Statement(value), nil
}

// block parses `{ stmt* }`.
func (p *Parser) block() (ast.Block, error) {
	if _, err := p.tokens.Expect(token.LEFT_BRACE); err != nil {
		return nil, err
	}

	body := ast.Block{}
	for {
		next := p.tokens.Peek()
		if next == nil {
			_, err := p.tokens.Expect(token.RIGHT_BRACE)
			return nil, err
		}
		if next.Kind == token.RIGHT_BRACE {
			break
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	p.tokens.Consume() // }
	return body, nil
}

func (p *Parser) unexpected(context string) *ParseError {
	found := p.tokens.Current()
	return newParseError(UnexpectedToken, found, "unexpected %s, %s", found.Describe(), context)
}
