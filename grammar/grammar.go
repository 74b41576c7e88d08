package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a whole source file in the declarative grammar. It accepts the
// same language as internal/parser and additionally records source ranges.
type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

type Statement struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Function *Function `  @@`
	Let      *Let      `| @@`
	Return   *Return   `| @@`
	Assign   *Assign   `| @@`
	Call     *Call     `| @@ (?! "+" | "-" | "*" | "/" | "^")`
	Expr     *ExprStmt `| @@`
	Empty    bool      `| @";"`
}

// Function takes named parameters, each followed by `,` or the closing
// paren, and then an optional `...` that must come last.
type Function struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     PosIdent      `"func" @@ "("`
	Params   []*Param      `( @@ ( "," @@ )* ( "," | (?= ")") ) )?`
	Variadic bool          `( @Ellipsis [ "," ] )? ")"`
	Body     *FunctionBody `@@ [ ";" ]`
}

type Param struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `@@`
	Type   string   `[ ":" @Ident ]`
}

type FunctionBody struct {
	Requires *Requires `  @@`
	Block    *Block    `| @@`
}

type Requires struct {
	Pos        lexer.Position
	Name       string `"@" @"requires" "("`
	Dependency string `@String ")"`
}

type Block struct {
	Statements []*Statement `"{" @@* "}"`
}

type Let struct {
	Mutable bool     `"let" @"mut"?`
	Name    PosIdent `@@ "="`
	Value   *Expr    `@@ [ ";" ]`
}

type Assign struct {
	Name  PosIdent `@@ "="`
	Value *Expr    `@@ ";"`
}

type Return struct {
	Value *Expr `"return" @@ [ ";" ]`
}

type ExprStmt struct {
	Expr *Expr `@@ [ ";" ]`
}

// Expr encodes precedence as grammar levels: sums of terms, terms of
// factors, factors of primaries joined by `^`. Every level folds left.
type Expr struct {
	Left *Term    `@@`
	Ops  []*SumOp `{ @@ }`
}

type SumOp struct {
	Operator string `@("+" | "-")`
	Right    *Term  `@@`
}

type Term struct {
	Left *Factor   `@@`
	Ops  []*TermOp `{ @@ }`
}

type TermOp struct {
	Operator string  `@("*" | "/")`
	Right    *Factor `@@`
}

type Factor struct {
	Left *Primary `@@`
	Ops  []*PowOp `{ @@ }`
}

type PowOp struct {
	Operator string   `@"^"`
	Right    *Primary `@@`
}

type Primary struct {
	Call   *Call     `  @@`
	Float  *string   `| @Float`
	Number *string   `| @Integer`
	Str    *string   `| @String`
	Ident  *PosIdent `| @@`
	Sub    *Expr     `| "(" @@ ")"`
}

type Call struct {
	Name PosIdent `@@ "("`
	Args []*Expr  `[ @@ { "," @@ } ] ")" [ ";" ]`
}
