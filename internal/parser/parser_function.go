package parser

import (
	"uma/internal/ast"
	"uma/token"
)

const requiresAttribute = "requires"

// function parses a declaration:
//
//	func name(params) { body } [;]
//	func name(params) @requires("header") [;]
//
// The second form is a foreign declaration and has no body in the source.
func (p *Parser) function() (ast.Stmt, error) {
	if _, err := p.tokens.Expect(token.FUNC); err != nil {
		return nil, err
	}

	name, err := p.tokens.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	params, variadic, err := p.args(true, true)
	if err != nil {
		return nil, err
	}

	fn := &ast.FunctionDecl{
		Name:     name.Literal,
		Params:   params,
		Variadic: variadic,
	}

	if p.tokens.Check(token.AT) {
		attr, err := p.attribute()
		if err != nil {
			return nil, err
		}
		fn.External = true
		fn.ExternalDependency = attr.Value
		fn.Body = ast.Block{}
	} else {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		fn.Body = body
	}

	p.tokens.TryExpect(token.SEMICOLON)
	return fn, nil
}

// attribute parses `@name("literal")`. Only `requires` is accepted.
func (p *Parser) attribute() (*ast.Attribute, error) {
	if _, err := p.tokens.Expect(token.AT); err != nil {
		return nil, err
	}

	name, err := p.tokens.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if name.Literal != requiresAttribute {
		return nil, newParseError(InvalidAttribute, name,
			"unknown attribute `%s`, expected `%s`", name.Literal, requiresAttribute)
	}

	if _, err := p.tokens.Expect(token.LEFT_PAREN); err != nil {
		return nil, err
	}

	value, err := p.tokens.Expect(token.STRING)
	if err != nil {
		return nil, err
	}

	if _, err := p.tokens.Expect(token.RIGHT_PAREN); err != nil {
		return nil, err
	}

	return &ast.Attribute{Name: name.Literal, Value: value.Literal}, nil
}

// args parses a parenthesized parameter list. withTypes permits `name: type`
// entries; unique rejects repeated names. An ellipsis may only appear last.
func (p *Parser) args(withTypes, unique bool) (ast.Params, bool, error) {
	if _, err := p.tokens.Expect(token.LEFT_PAREN); err != nil {
		return nil, false, err
	}

	params := ast.Params{}
	seen := make(map[string]struct{})

	for {
		if _, ok := p.tokens.TryExpect(token.RIGHT_PAREN); ok {
			return params, false, nil
		}

		if _, ok := p.tokens.TryExpect(token.ELLIPSIS); ok {
			p.tokens.TryExpect(token.COMMA)
			if _, err := p.tokens.Expect(token.RIGHT_PAREN); err != nil {
				return nil, false, err
			}
			return params, true, nil
		}

		name, err := p.tokens.Expect(token.IDENTIFIER)
		if err != nil {
			return nil, false, err
		}

		param := ast.Param{Name: name.Literal}
		if withTypes {
			if _, ok := p.tokens.TryExpect(token.COLON); ok {
				typ, err := p.tokens.Expect(token.IDENTIFIER)
				if err != nil {
					return nil, false, err
				}
				param.Type = typ.Literal
			}
		}

		if unique {
			if _, dup := seen[param.Name]; dup {
				return nil, false, newParseError(DuplicateArgument, name,
					"duplicate argument `%s`", param.Name)
			}
			seen[param.Name] = struct{}{}
		}
		params = append(params, param)

		if _, ok := p.tokens.TryExpect(token.RIGHT_PAREN); ok {
			return params, false, nil
		}
		if _, ok := p.tokens.TryExpect(token.COMMA); !ok {
			return nil, false, p.expectedEither(token.RIGHT_PAREN, token.COMMA)
		}
	}
}
