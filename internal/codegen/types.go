package codegen

import (
	"uma/internal/ast"
	"uma/token"
)

// CType is the C spelling of a value type.
type CType string

const (
	Void   CType = "void"
	Int    CType = "long long"
	Double CType = "double"
	String CType = "const char *"
)

// paramTypes maps source type annotations to C. A missing annotation is an
// integer.
var paramTypes = map[string]CType{
	"":       Int,
	"int":    Int,
	"float":  Double,
	"string": String,
}

func paramType(fn string, p ast.Param) (CType, error) {
	t, ok := paramTypes[p.Type]
	if !ok {
		return "", unsupported("parameter `%s` of `%s` has unknown type `%s`", p.Name, fn, p.Type)
	}
	return t, nil
}

// declare renders a declaration of name with type t.
func declare(t CType, name string, constant bool) string {
	switch {
	case t == String && constant:
		return "const char *const " + name
	case t == String:
		return "const char *" + name
	case constant:
		return "const " + string(t) + " " + name
	default:
		return string(t) + " " + name
	}
}

type binding struct {
	typ     CType
	mutable bool
}

// scope holds the names visible while lowering one function.
type scope struct {
	parent *scope
	names  map[string]binding
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]binding)}
}

func (s *scope) define(name string, t CType, mutable bool) {
	s.names[name] = binding{typ: t, mutable: mutable}
}

func (s *scope) resolve(name string) (binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

func (s *scope) lookup(name string) (CType, bool) {
	b, ok := s.resolve(name)
	return b.typ, ok
}

// typeOf infers the C type of e. Unknown identifiers default to Int.
func (g *generator) typeOf(e ast.Expr, sc *scope) (CType, error) {
	switch v := e.(type) {
	case *ast.NumberLiteral:
		return Int, nil
	case *ast.FloatLiteral:
		return Double, nil
	case *ast.StringLiteral:
		return String, nil
	case *ast.Identifier:
		if t, ok := sc.lookup(v.Name); ok {
			return t, nil
		}
		return Int, nil
	case *ast.Call:
		return g.returnType(v.Name)
	case *ast.Binary:
		left, err := g.typeOf(v.Left, sc)
		if err != nil {
			return "", err
		}
		right, err := g.typeOf(v.Right, sc)
		if err != nil {
			return "", err
		}
		if left == String || right == String {
			return "", unsupported("operator `%s` cannot be applied to a string", v.Operator.Text())
		}
		if left == Void || right == Void {
			return "", unsupported("operator `%s` applied to a call without a value", v.Operator.Text())
		}
		if v.Operator.Kind == token.CARET || left == Double || right == Double {
			return Double, nil
		}
		return Int, nil
	}
	return "", unsupported("expression %T", e)
}
