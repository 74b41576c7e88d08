package parser

import (
	"uma/internal/ast"
	"uma/token"
)

func (p *Parser) expr() (ast.Expr, error) {
	lhs, err := p.primary()
	if err != nil {
		return nil, err
	}
	return p.binary(lhs, 0)
}

// binary is the precedence-climbing loop. Operators of equal precedence fold
// to the left; a tighter operator on the right is bound first by recursing
// with a raised minimum.
func (p *Parser) binary(lhs ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		next := p.tokens.Peek()
		if next == nil || !next.Kind.IsOperator() || next.Kind.Precedence() < minPrec {
			return lhs, nil
		}

		op := p.tokens.Consume()

		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}

		if following := p.tokens.Peek(); following != nil && following.Kind.Precedence() > op.Kind.Precedence() {
			rhs, err = p.binary(rhs, op.Kind.Precedence()+1)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.Binary{Left: lhs, Operator: op, Right: rhs}
	}
}

func (p *Parser) primary() (ast.Expr, error) {
	next := p.tokens.Peek()
	if next == nil {
		return nil, p.unexpected("expected an expression")
	}

	switch next.Kind {
	case token.STRING:
		return &ast.StringLiteral{Value: p.tokens.Consume().Literal}, nil
	case token.NUMBER:
		return &ast.NumberLiteral{Value: p.tokens.Consume().Literal}, nil
	case token.FLOAT:
		return &ast.FloatLiteral{Value: p.tokens.Consume().Literal}, nil
	case token.IDENTIFIER:
		name := p.tokens.Consume()
		if p.tokens.Check(token.LEFT_PAREN) {
			return p.call(name.Literal)
		}
		return &ast.Identifier{Name: name.Literal}, nil
	case token.LEFT_PAREN:
		p.tokens.Consume()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.tokens.Expect(token.RIGHT_PAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}

	return nil, p.unexpected("expected an expression")
}

// call parses the argument list after an already consumed callee name.
// Trailing commas are rejected; a trailing `;` is consumed when present.
func (p *Parser) call(name string) (*ast.Call, error) {
	if _, err := p.tokens.Expect(token.LEFT_PAREN); err != nil {
		return nil, err
	}

	call := &ast.Call{Name: name}
	if _, ok := p.tokens.TryExpect(token.RIGHT_PAREN); !ok {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)

			if _, ok := p.tokens.TryExpect(token.RIGHT_PAREN); ok {
				break
			}
			if _, err := p.tokens.Expect(token.COMMA); err != nil {
				return nil, p.expectedEither(token.RIGHT_PAREN, token.COMMA)
			}
		}
	}

	p.tokens.TryExpect(token.SEMICOLON)
	return call, nil
}

func (p *Parser) expectedEither(a, b token.Kind) *ParseError {
	found := p.tokens.Current()
	return newParseError(ExpectedToken, found,
		"expected %s or %s, found %s", a.Describe(), b.Describe(), found.Describe())
}
