package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// String renders the program in canonical form: one statement per line,
// binary expressions fully parenthesized, `_` separators dropped and string
// escapes normalized.
func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		s.write(&b, 0)
	}
	return b.String()
}

func (s *Statement) write(b *strings.Builder, level int) {
	b.WriteString(indent(level))
	switch {
	case s.Function != nil:
		s.Function.write(b, level)
	case s.Let != nil:
		b.WriteString(s.Let.String() + "\n")
	case s.Return != nil:
		b.WriteString(fmt.Sprintf("return %s;\n", s.Return.Value))
	case s.Assign != nil:
		b.WriteString(fmt.Sprintf("%s = %s;\n", s.Assign.Name.Value, s.Assign.Value))
	case s.Call != nil:
		b.WriteString(s.Call.String() + ";\n")
	case s.Expr != nil:
		b.WriteString(s.Expr.Expr.String() + ";\n")
	default:
		b.WriteString(";\n")
	}
}

func (f *Function) write(b *strings.Builder, level int) {
	b.WriteString(f.Header())
	if f.Body.Requires != nil {
		b.WriteString(" " + f.Body.Requires.String() + ";\n")
		return
	}

	b.WriteString(" {\n")
	for _, s := range f.Body.Block.Statements {
		s.write(b, level+1)
	}
	b.WriteString(indent(level) + "}\n")
}

// Header is the declaration line without body or attribute.
func (f *Function) Header() string {
	params := make([]string, 0, len(f.Params)+1)
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	if f.Variadic {
		params = append(params, "...")
	}
	return fmt.Sprintf("func %s(%s)", f.Name.Value, strings.Join(params, ", "))
}

func (p *Param) String() string {
	if p.Type == "" {
		return p.Name.Value
	}
	return p.Name.Value + ": " + p.Type
}

func (r *Requires) String() string {
	return fmt.Sprintf("@%s(%s)", r.Name, quote(unquote(r.Dependency)))
}

func (l *Let) String() string {
	if l.Mutable {
		return fmt.Sprintf("let mut %s = %s;", l.Name.Value, l.Value)
	}
	return fmt.Sprintf("let %s = %s;", l.Name.Value, l.Value)
}

func (e *Expr) String() string {
	out := e.Left.String()
	for _, op := range e.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Operator, op.Right)
	}
	return out
}

func (t *Term) String() string {
	out := t.Left.String()
	for _, op := range t.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Operator, op.Right)
	}
	return out
}

func (f *Factor) String() string {
	out := f.Left.String()
	for _, op := range f.Ops {
		out = fmt.Sprintf("(%s %s %s)", out, op.Operator, op.Right)
	}
	return out
}

func (p *Primary) String() string {
	switch {
	case p.Call != nil:
		return p.Call.String()
	case p.Float != nil:
		return strings.ReplaceAll(*p.Float, "_", "")
	case p.Number != nil:
		return strings.ReplaceAll(*p.Number, "_", "")
	case p.Str != nil:
		return quote(unquote(*p.Str))
	case p.Ident != nil:
		return p.Ident.Value
	default:
		return p.Sub.String()
	}
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name.Value, strings.Join(args, ", "))
}

// unquote strips the delimiters of a raw string token and resolves \n and
// \t. Any other escaped character stands for itself.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := []rune(raw[1 : len(raw)-1])

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		r := body[i]
		if r == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			default:
				r = body[i]
			}
		}
		b.WriteRune(r)
	}
	return b.String()
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
