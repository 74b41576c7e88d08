package ast

import "uma/token"

type Expr interface {
	Node
	isExpr()
}

func (*Binary) isExpr() {}

func (*Identifier) isExpr() {}

func (*NumberLiteral) isExpr() {}

func (*FloatLiteral) isExpr() {}

func (*StringLiteral) isExpr() {}

// A call is a primary expression as well as a statement.
func (*Call) isExpr() {}

// Binary is an infix operation. Operator always has a positive precedence.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Identifier struct {
	Name string
}

// NumberLiteral holds the integer digits with `_` separators removed.
type NumberLiteral struct {
	Value string
}

// FloatLiteral holds the digits and exactly one decimal point.
type FloatLiteral struct {
	Value string
}

// StringLiteral holds the decoded text (escapes already processed).
type StringLiteral struct {
	Value string
}
