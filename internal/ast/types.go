package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Expressions
	BINARY_EXPR
	IDENT_EXPR
	NUMBER_LITERAL
	FLOAT_LITERAL
	STRING_LITERAL

	// Statements
	VARIABLE_DECL
	ASSIGNMENT
	FUNCTION_DECL
	CALL
	RETURN_STMT
	ATTRIBUTE
	EXPR_STMT
	EMPTY_STMT
)

var nodeTypeNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	BINARY_EXPR:    "BINARY_EXPR",
	IDENT_EXPR:     "IDENT_EXPR",
	NUMBER_LITERAL: "NUMBER_LITERAL",
	FLOAT_LITERAL:  "FLOAT_LITERAL",
	STRING_LITERAL: "STRING_LITERAL",
	VARIABLE_DECL:  "VARIABLE_DECL",
	ASSIGNMENT:     "ASSIGNMENT",
	FUNCTION_DECL:  "FUNCTION_DECL",
	CALL:           "CALL",
	RETURN_STMT:    "RETURN_STMT",
	ATTRIBUTE:      "ATTRIBUTE",
	EXPR_STMT:      "EXPR_STMT",
	EMPTY_STMT:     "EMPTY_STMT",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}
