// Package codegen lowers a parsed compilation unit to C and drives a C
// compiler to turn it into an executable.
package codegen

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	"uma/internal/ast"
	"uma/token"
)

var log = commonlog.GetLogger("uma.codegen")

// Unit is one generated C translation unit.
type Unit struct {
	Includes  []string // headers in first-use order, without brackets
	Libraries []string // extra libraries to link, e.g. "m"
	Source    string
}

type generator struct {
	functions map[string]*ast.FunctionDecl
	defined   []*ast.FunctionDecl

	returns map[string]CType
	pending map[string]bool

	includes  []string
	libraries []string
}

// Generate lowers stmts to C. Function declarations become C functions,
// external ones contribute their header, and every other top-level statement
// runs in main.
func Generate(stmts []ast.Stmt) (*Unit, error) {
	g := &generator{
		functions: make(map[string]*ast.FunctionDecl),
		returns:   make(map[string]CType),
		pending:   make(map[string]bool),
	}

	var top []ast.Stmt
	for _, s := range stmts {
		fn, ok := s.(*ast.FunctionDecl)
		if !ok {
			top = append(top, s)
			continue
		}
		if err := g.declare(fn); err != nil {
			return nil, err
		}
	}

	defs := &printer{}
	for _, fn := range g.defined {
		if err := g.function(fn, defs); err != nil {
			return nil, err
		}
		defs.blank()
	}

	entry := &printer{}
	entry.writeLine("int main(void) {")
	entry.indent++
	mainScope := newScope(nil)
	for _, s := range top {
		if err := g.stmt(s, mainScope, entry); err != nil {
			return nil, err
		}
	}
	entry.writeLine("return 0;")
	entry.indent--
	entry.writeLine("}")

	var out strings.Builder
	for _, inc := range g.includes {
		out.WriteString(fmt.Sprintf("#include <%s>\n", inc))
	}
	if len(g.includes) > 0 {
		out.WriteString("\n")
	}
	if len(g.defined) > 0 {
		for _, fn := range g.defined {
			sig, err := g.signature(fn)
			if err != nil {
				return nil, err
			}
			out.WriteString(sig + ";\n")
		}
		out.WriteString("\n")
	}
	out.WriteString(defs.String())
	out.WriteString(entry.String())

	log.Debugf("generated %d functions, %d includes", len(g.defined), len(g.includes))

	return &Unit{
		Includes:  g.includes,
		Libraries: g.libraries,
		Source:    out.String(),
	}, nil
}

func (g *generator) declare(fn *ast.FunctionDecl) error {
	if fn.Name == "main" {
		return unsupported("function name `main` is reserved for the program entry point")
	}
	if _, dup := g.functions[fn.Name]; dup {
		return unsupported("function `%s` is declared more than once", fn.Name)
	}
	g.functions[fn.Name] = fn

	if fn.External {
		g.include(fn.ExternalDependency)
		return nil
	}
	g.defined = append(g.defined, fn)
	return nil
}

func (g *generator) include(header string) {
	if header == "" {
		return
	}
	for _, inc := range g.includes {
		if inc == header {
			return
		}
	}
	g.includes = append(g.includes, header)
}

func (g *generator) link(lib string) {
	for _, l := range g.libraries {
		if l == lib {
			return
		}
	}
	g.libraries = append(g.libraries, lib)
}

// functionScope binds the parameters of fn.
func (g *generator) functionScope(fn *ast.FunctionDecl) (*scope, []string, error) {
	sc := newScope(nil)
	params := make([]string, 0, len(fn.Params)+1)
	for _, p := range fn.Params {
		t, err := paramType(fn.Name, p)
		if err != nil {
			return nil, nil, err
		}
		sc.define(p.Name, t, true)
		params = append(params, declare(t, p.Name, false))
	}

	if fn.Variadic {
		if len(fn.Params) == 0 {
			return nil, nil, unsupported("variadic function `%s` needs at least one named parameter", fn.Name)
		}
		params = append(params, "...")
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	return sc, params, nil
}

func (g *generator) signature(fn *ast.FunctionDecl) (string, error) {
	_, params, err := g.functionScope(fn)
	if err != nil {
		return "", err
	}
	ret, err := g.returnType(fn.Name)
	if err != nil {
		return "", err
	}

	head := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(params, ", "))
	if ret == String {
		return string(ret) + head, nil
	}
	return string(ret) + " " + head, nil
}

// returnType is the type of the first value returned directly in the body
// of name, or Void. External functions are assumed to return an integer.
func (g *generator) returnType(name string) (CType, error) {
	fn, ok := g.functions[name]
	if !ok {
		return "", unknownFunction(name)
	}
	if fn.External {
		return Int, nil
	}
	if t, ok := g.returns[name]; ok {
		return t, nil
	}
	if g.pending[name] {
		// recursive call inside its own return expression
		return Int, nil
	}

	g.pending[name] = true
	defer delete(g.pending, name)

	sc, _, err := g.functionScope(fn)
	if err != nil {
		return "", err
	}

	ret := Void
	for _, s := range fn.Body {
		switch v := s.(type) {
		case *ast.VariableDecl:
			t, err := g.typeOf(v.Value, sc)
			if err != nil {
				return "", err
			}
			sc.define(v.Name, t, v.Mutable)
		case *ast.Return:
			t, err := g.typeOf(v.Value, sc)
			if err != nil {
				return "", err
			}
			ret = t
		}
		if ret != Void {
			break
		}
	}

	g.returns[name] = ret
	return ret, nil
}

func (g *generator) function(fn *ast.FunctionDecl, p *printer) error {
	for _, s := range fn.Body {
		if decl, ok := s.(*ast.VariableDecl); ok {
			if _, clash := fn.Params.Lookup(decl.Name); clash {
				return unsupported("`%s` redeclares a parameter of `%s`", decl.Name, fn.Name)
			}
		}
	}

	sc, _, err := g.functionScope(fn)
	if err != nil {
		return err
	}
	sig, err := g.signature(fn)
	if err != nil {
		return err
	}

	p.writeLine("%s {", sig)
	p.indent++
	for _, s := range fn.Body {
		if err := g.stmt(s, sc, p); err != nil {
			return err
		}
	}
	p.indent--
	p.writeLine("}")
	return nil
}

func (g *generator) stmt(s ast.Stmt, sc *scope, p *printer) error {
	switch v := s.(type) {
	case *ast.VariableDecl:
		t, err := g.typeOf(v.Value, sc)
		if err != nil {
			return err
		}
		if t == Void {
			return unsupported("`%s` is initialized from a call that returns no value", v.Name)
		}
		value, err := g.expr(v.Value, sc)
		if err != nil {
			return err
		}
		sc.define(v.Name, t, v.Mutable)
		p.writeLine("%s = %s;", declare(t, v.Name, !v.Mutable), value)
	case *ast.Assignment:
		// immutable bindings are emitted as const locals
		if b, ok := sc.resolve(v.Name); ok && !b.mutable {
			return unsupported("cannot assign to immutable variable `%s`", v.Name)
		}
		value, err := g.expr(v.Value, sc)
		if err != nil {
			return err
		}
		p.writeLine("%s = %s;", v.Name, value)
	case *ast.Return:
		value, err := g.expr(v.Value, sc)
		if err != nil {
			return err
		}
		p.writeLine("return %s;", value)
	case *ast.Call:
		call, err := g.expr(v, sc)
		if err != nil {
			return err
		}
		p.writeLine("%s;", call)
	case *ast.ExprStmt:
		value, err := g.expr(v.Expr, sc)
		if err != nil {
			return err
		}
		p.writeLine("%s;", value)
	case *ast.Empty:
	case *ast.FunctionDecl:
		return unsupported("nested function `%s`", v.Name)
	default:
		return unsupported("statement %s", s.NodeType())
	}
	return nil
}

func (g *generator) expr(e ast.Expr, sc *scope) (string, error) {
	switch v := e.(type) {
	case *ast.NumberLiteral:
		return v.Value, nil
	case *ast.FloatLiteral:
		return v.Value, nil
	case *ast.StringLiteral:
		return cQuote(v.Value), nil
	case *ast.Identifier:
		return v.Name, nil
	case *ast.Call:
		if _, ok := g.functions[v.Name]; !ok {
			return "", unknownFunction(v.Name)
		}
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			a, err := g.expr(arg, sc)
			if err != nil {
				return "", err
			}
			args[i] = a
		}
		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", ")), nil
	case *ast.Binary:
		if _, err := g.typeOf(v, sc); err != nil {
			return "", err
		}
		left, err := g.expr(v.Left, sc)
		if err != nil {
			return "", err
		}
		right, err := g.expr(v.Right, sc)
		if err != nil {
			return "", err
		}
		if v.Operator.Kind == token.CARET {
			g.include("math.h")
			g.link("m")
			return fmt.Sprintf("pow(%s, %s)", left, right), nil
		}
		return fmt.Sprintf("(%s %s %s)", left, v.Operator.Text(), right), nil
	}
	return "", unsupported("expression %T", e)
}
