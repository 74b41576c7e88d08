package ast

// Walk visits every statement and expression in pre-order. Children of a node
// are skipped when fn returns false for it.
func Walk(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		walkNode(s, fn)
	}
}

func walkNode(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch v := n.(type) {
	case *Binary:
		walkNode(v.Left, fn)
		walkNode(v.Right, fn)
	case *Call:
		for _, arg := range v.Args {
			walkNode(arg, fn)
		}
	case *VariableDecl:
		walkNode(v.Value, fn)
	case *Assignment:
		walkNode(v.Value, fn)
	case *Return:
		walkNode(v.Value, fn)
	case *ExprStmt:
		walkNode(v.Expr, fn)
	case *FunctionDecl:
		Walk(v.Body, fn)
	case *Identifier, *NumberLiteral, *FloatLiteral, *StringLiteral, *Attribute, *Empty:
	}
}
