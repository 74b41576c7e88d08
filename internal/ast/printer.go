package ast

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// Format renders a compilation unit one statement per line.
func Format(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		writeStmt(&b, s, 0)
	}
	return b.String()
}

func writeStmt(b *strings.Builder, s Stmt, level int) {
	b.WriteString(indent(level))
	switch v := s.(type) {
	case *FunctionDecl:
		b.WriteString(v.header())
		if v.External {
			b.WriteString(";\n")
			return
		}
		b.WriteString(" {\n")
		for _, inner := range v.Body {
			writeStmt(b, inner, level+1)
		}
		b.WriteString(indent(level) + "}\n")
	case *Call:
		b.WriteString(v.String() + ";\n")
	default:
		b.WriteString(s.String() + "\n")
	}
}

// Binary always prints fully parenthesized so the grouping is visible.
func (be *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Operator.Text(), be.Right.String())
}

func (i *Identifier) String() string {
	return i.Name
}

func (n *NumberLiteral) String() string {
	return n.Value
}

func (f *FloatLiteral) String() string {
	return f.Value
}

func (s *StringLiteral) String() string {
	return quote(s.Value)
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

func (v *VariableDecl) String() string {
	if v.Mutable {
		return fmt.Sprintf("let mut %s = %s;", v.Name, v.Value.String())
	}
	return fmt.Sprintf("let %s = %s;", v.Name, v.Value.String())
}

func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s;", a.Name, a.Value.String())
}

func (p Param) String() string {
	if p.Type == "" {
		return p.Name
	}
	return p.Name + ": " + p.Type
}

func (f *FunctionDecl) header() string {
	params := make([]string, 0, len(f.Params)+1)
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	if f.Variadic {
		params = append(params, "...")
	}

	header := fmt.Sprintf("func %s(%s)", f.Name, strings.Join(params, ", "))
	if f.External {
		header += " " + (&Attribute{Name: "requires", Value: f.ExternalDependency}).String()
	}
	return header
}

func (f *FunctionDecl) String() string {
	if f.External {
		return f.header() + ";"
	}
	return f.header() + " " + f.Body.String()
}

func (r *Return) String() string {
	return fmt.Sprintf("return %s;", r.Value.String())
}

func (a *Attribute) String() string {
	return fmt.Sprintf("@%s(%s)", a.Name, quote(a.Value))
}

func (e *ExprStmt) String() string {
	return e.Expr.String() + ";"
}

func (*Empty) String() string {
	return ";"
}

func (b Block) String() string {
	if len(b) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b {
		writeStmt(&sb, s, 1)
	}
	sb.WriteString("}")
	return sb.String()
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
