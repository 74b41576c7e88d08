package lsp

import (
	"sort"

	"github.com/alecthomas/participle/v2/lexer"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"uma/grammar"
	"uma/token"
)

func documentSymbol(sym grammar.Symbol) protocol.DocumentSymbol {
	kind := protocol.SymbolKindVariable
	if sym.Kind == grammar.FunctionSymbol {
		kind = protocol.SymbolKindFunction
	}

	nameStart := toPosition(sym.NameStart)
	out := protocol.DocumentSymbol{
		Name: sym.Name,
		Kind: kind,
		Range: protocol.Range{
			Start: toPosition(sym.Start),
			End:   toPosition(sym.End),
		},
		SelectionRange: protocol.Range{
			Start: nameStart,
			End:   protocol.Position{Line: nameStart.Line, Character: nameStart.Character + uint32(len([]rune(sym.Name)))},
		},
	}
	if sym.Detail != "" {
		out.Detail = ptrString(sym.Detail)
	}

	for _, child := range sym.Children {
		out.Children = append(out.Children, documentSymbol(child))
	}
	return out
}

// toPosition converts participle's 1-based line and column.
func toPosition(pos lexer.Position) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

// completionItems offers every keyword, then the functions and variables
// the document declares. Names are only offered when the file parses.
func completionItems(uri, text string) []protocol.CompletionItem {
	keywordKind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(token.Keywords()))
	for _, kw := range token.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  &keywordKind,
		})
	}

	program, err := grammar.Parse(uri, text)
	if err != nil {
		return items
	}

	seen := make(map[string]bool)
	var names []protocol.CompletionItem
	var visit func(symbols []grammar.Symbol)
	visit = func(symbols []grammar.Symbol) {
		for _, sym := range symbols {
			if !seen[sym.Name] {
				seen[sym.Name] = true
				kind := protocol.CompletionItemKindVariable
				if sym.Kind == grammar.FunctionSymbol {
					kind = protocol.CompletionItemKindFunction
				}
				item := protocol.CompletionItem{Label: sym.Name, Kind: &kind}
				if sym.Detail != "" {
					item.Detail = ptrString(sym.Detail)
				}
				names = append(names, item)
			}
			visit(sym.Children)
		}
	}
	visit(grammar.Outline(program))

	sort.Slice(names, func(i, j int) bool { return names[i].Label < names[j].Label })
	return append(items, names...)
}
