package ast

// Node is any element of the syntax tree. The tree is strict: every node is
// owned by exactly one parent and there are no back references.
type Node interface {
	NodeType() NodeType
	String() string
}

func (*Binary) NodeType() NodeType        { return BINARY_EXPR }
func (*Identifier) NodeType() NodeType    { return IDENT_EXPR }
func (*NumberLiteral) NodeType() NodeType { return NUMBER_LITERAL }
func (*FloatLiteral) NodeType() NodeType  { return FLOAT_LITERAL }
func (*StringLiteral) NodeType() NodeType { return STRING_LITERAL }

func (*VariableDecl) NodeType() NodeType { return VARIABLE_DECL }
func (*Assignment) NodeType() NodeType   { return ASSIGNMENT }
func (*FunctionDecl) NodeType() NodeType { return FUNCTION_DECL }
func (*Call) NodeType() NodeType         { return CALL }
func (*Return) NodeType() NodeType       { return RETURN_STMT }
func (*Attribute) NodeType() NodeType    { return ATTRIBUTE }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }
func (*Empty) NodeType() NodeType        { return EMPTY_STMT }
