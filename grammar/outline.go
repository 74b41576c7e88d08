package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type SymbolKind int

const (
	FunctionSymbol SymbolKind = iota
	VariableSymbol
	ParameterSymbol
)

// Symbol is one named declaration with its source range. Positions are
// participle's: Line and Column both start at 1.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Detail    string
	Start     lexer.Position
	End       lexer.Position
	NameStart lexer.Position
	Children  []Symbol
}

// Outline lists functions and variables in declaration order. Parameters and
// the declarations inside a function body become its children.
func Outline(p *Program) []Symbol {
	return outline(p.Statements)
}

func outline(stmts []*Statement) []Symbol {
	var symbols []Symbol
	for _, s := range stmts {
		switch {
		case s.Function != nil:
			symbols = append(symbols, functionSymbol(s.Function))
		case s.Let != nil:
			detail := "let"
			if s.Let.Mutable {
				detail = "let mut"
			}
			symbols = append(symbols, Symbol{
				Name:      s.Let.Name.Value,
				Kind:      VariableSymbol,
				Detail:    detail,
				Start:     s.Pos,
				End:       s.EndPos,
				NameStart: s.Let.Name.Pos,
			})
		}
	}
	return symbols
}

func functionSymbol(f *Function) Symbol {
	sym := Symbol{
		Name:      f.Name.Value,
		Kind:      FunctionSymbol,
		Detail:    f.Header(),
		Start:     f.Pos,
		End:       f.EndPos,
		NameStart: f.Name.Pos,
	}

	for _, param := range f.Params {
		sym.Children = append(sym.Children, Symbol{
			Name:      param.Name.Value,
			Kind:      ParameterSymbol,
			Detail:    param.Type,
			Start:     param.Pos,
			End:       param.EndPos,
			NameStart: param.Name.Pos,
		})
	}

	if f.Body.Requires != nil {
		sym.Detail += " " + f.Body.Requires.String()
	} else {
		sym.Children = append(sym.Children, outline(f.Body.Block.Statements)...)
	}
	return sym
}
