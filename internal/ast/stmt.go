package ast

import "uma/token"

type Stmt interface {
	Node
	isStmt()
}

func (*VariableDecl) isStmt() {}

func (*Assignment) isStmt() {}

func (*FunctionDecl) isStmt() {}

func (*Call) isStmt() {}

func (*Return) isStmt() {}

func (*Attribute) isStmt() {}

func (*ExprStmt) isStmt() {}

func (*Empty) isStmt() {}

type VariableDecl struct {
	Name    string
	Value   Expr
	Mutable bool
}

type Assignment struct {
	Name  string
	Value Expr
}

// Param is one entry of a parameter list. Type is empty when undeclared.
type Param struct {
	Name string
	Type string
}

// Params keeps declaration order; names are unique within one function.
type Params []Param

// Lookup returns the parameter called name.
func (ps Params) Lookup(name string) (Param, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (ps Params) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// FunctionDecl is a function definition, or a foreign declaration when
// External is set. External declarations never have a body.
type FunctionDecl struct {
	Name               string
	Params             Params
	Variadic           bool
	External           bool
	ExternalDependency string
	Body               Block
}

type Call struct {
	Name string
	Args []Expr
}

type Return struct {
	Value Expr
}

// Attribute is the `@name("value")` annotation. It only exists while a
// function declaration is being parsed.
type Attribute struct {
	Name  string
	Value string
}

type ExprStmt struct {
	Expr Expr
}

// Empty is a stray `;`.
type Empty struct {
	Pos token.Position
}

type Block []Stmt

// Statement wraps e for use at statement level. Calls stand on their own,
// everything else goes into an ExprStmt.
func Statement(e Expr) Stmt {
	if call, ok := e.(*Call); ok {
		return call
	}
	return &ExprStmt{Expr: e}
}
