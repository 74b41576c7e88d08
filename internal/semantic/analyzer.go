// Package semantic reports suspicious but valid code. It never rejects a
// program; everything it finds is a warning.
package semantic

import (
	"fmt"

	"uma/internal/ast"
	"uma/internal/errors"
	"uma/token"
)

type Analyzer struct {
	errors    []errors.CompilerError
	externals map[string]*ast.FunctionDecl
	order     []string
	called    map[string]bool
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		errors: make([]errors.CompilerError, 0),
	}
}

// Analyze walks a parsed compilation unit and returns its warnings in
// source order, followed by external functions that are never called.
func (a *Analyzer) Analyze(stmts []ast.Stmt) []errors.CompilerError {
	a.errors = make([]errors.CompilerError, 0)
	a.externals = make(map[string]*ast.FunctionDecl)
	a.order = nil
	a.called = make(map[string]bool)

	ast.Walk(stmts, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Empty:
			a.addEmptyStatement(v)
		case *ast.FunctionDecl:
			if v.External {
				if _, seen := a.externals[v.Name]; !seen {
					a.order = append(a.order, v.Name)
				}
				a.externals[v.Name] = v
			}
		case *ast.Call:
			a.called[v.Name] = true
		}
		return true
	})

	for _, name := range a.order {
		if !a.called[name] {
			a.addUnusedExternal(a.externals[name])
		}
	}
	return a.errors
}

func (a *Analyzer) addEmptyStatement(e *ast.Empty) {
	warn := errors.NewWarning(errors.WarningEmptyStatement, "empty statement", e.Pos).
		WithLength(1).
		WithHelp("remove the stray `;`").
		Build()
	a.errors = append(a.errors, warn)
}

// addUnusedExternal has no source position to offer: declarations do not
// record where they start.
func (a *Analyzer) addUnusedExternal(fn *ast.FunctionDecl) {
	warn := errors.NewWarning(errors.WarningUnusedExternal,
		fmt.Sprintf("external function `%s` is never called", fn.Name), token.Position{}).
		WithNote(fmt.Sprintf("its header <%s> is still included", fn.ExternalDependency)).
		Build()
	a.errors = append(a.errors, warn)
}
