package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"uma/internal/lsp"
)

const testURI = "file:///workspace/main.uma"

// recorder captures the notifications a handler sends back to the client.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) *protocol.PublishDiagnosticsParams {
	require.NotEmpty(t, r.published, "no diagnostics were published")
	return r.published[len(r.published)-1]
}

func open(t *testing.T, handler *lsp.UmaHandler, rec *recorder, text string) {
	err := handler.TextDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "uma",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func TestInitialize(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "0.1.0")

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, "uma-lsp", res.ServerInfo.Name)
	assert.Equal(t, "0.1.0", *res.ServerInfo.Version)
	assert.Equal(t, true, res.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, res.Capabilities.CompletionProvider)

	sync, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)

	semantic, ok := res.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, semantic.Legend.TokenTypes)
	assert.Equal(t, lsp.SemanticTokenModifiers, semantic.Legend.TokenModifiers)

	require.NoError(t, handler.Initialized(&glsp.Context{}, &protocol.InitializedParams{}))
	require.NoError(t, handler.SetTrace(&glsp.Context{}, &protocol.SetTraceParams{Value: protocol.TraceValueVerbose}))
	require.NoError(t, handler.Shutdown(&glsp.Context{}))
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}

	open(t, handler, rec, `func add(a: int, b) {
  let s = a + b;
  return s;
}
let mut x = add(1, 2.5);;
let msg = "hi\"";
func puts(s: string) @requires("stdio.h");
`)

	tokens, err := handler.TextDocumentSemanticTokensFull(rec.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 30)

	assertToken(t, &decoded[0], 1, 1, 4, "keyword", nil)
	assertToken(t, &decoded[1], 1, 6, 3, "function", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 10, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[3], 1, 13, 3, "type", nil)
	assertToken(t, &decoded[4], 1, 18, 1, "parameter", []string{"declaration"})

	assertToken(t, &decoded[5], 2, 3, 3, "keyword", nil)
	assertToken(t, &decoded[6], 2, 7, 1, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[7], 2, 9, 1, "operator", nil)
	assertToken(t, &decoded[8], 2, 11, 1, "parameter", nil)
	assertToken(t, &decoded[9], 2, 13, 1, "operator", nil)
	assertToken(t, &decoded[10], 2, 15, 1, "parameter", nil)

	assertToken(t, &decoded[11], 3, 3, 6, "keyword", nil)
	assertToken(t, &decoded[12], 3, 10, 1, "variable", nil)

	assertToken(t, &decoded[13], 5, 1, 3, "keyword", nil)
	assertToken(t, &decoded[14], 5, 5, 3, "keyword", nil)
	assertToken(t, &decoded[15], 5, 9, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[16], 5, 11, 1, "operator", nil)
	assertToken(t, &decoded[17], 5, 13, 3, "function", nil)
	assertToken(t, &decoded[18], 5, 17, 1, "number", nil)
	assertToken(t, &decoded[19], 5, 20, 3, "number", nil)

	assertToken(t, &decoded[20], 6, 1, 3, "keyword", nil)
	assertToken(t, &decoded[21], 6, 5, 3, "variable", []string{"declaration", "readonly"})
	assertToken(t, &decoded[22], 6, 9, 1, "operator", nil)
	assertToken(t, &decoded[23], 6, 11, 6, "string", nil)

	assertToken(t, &decoded[24], 7, 1, 4, "keyword", nil)
	assertToken(t, &decoded[25], 7, 6, 4, "function", []string{"declaration"})
	assertToken(t, &decoded[26], 7, 11, 1, "parameter", []string{"declaration"})
	assertToken(t, &decoded[27], 7, 14, 6, "type", nil)
	assertToken(t, &decoded[28], 7, 23, 8, "decorator", nil)
	assertToken(t, &decoded[29], 7, 32, 9, "string", nil)
}

func TestSemanticTokensForUnopenedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.uma")
	require.NoError(t, os.WriteFile(path, []byte("let n = 1_000;\n"), 0o644))

	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	uri := "file://" + filepath.ToSlash(path)

	tokens, err := handler.TextDocumentSemanticTokensFull(rec.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[3], 1, 9, 5, "number", nil)

	assert.Equal(t, uri, rec.last(t).URI)
	assert.Empty(t, rec.last(t).Diagnostics)
}

func TestSemanticTokensForMissingFile(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")

	_, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.uma"},
	})
	assert.ErrorContains(t, err, "failed to read file")
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}

	open(t, handler, rec, "let y = #;")

	published := rec.last(t)
	assert.Equal(t, testURI, published.URI)
	require.Len(t, published.Diagnostics, 1)

	diag := published.Diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 0, Character: 8}, diag.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 9}, diag.Range.End)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	assert.Equal(t, "E0100", diag.Code.Value)
	assert.Equal(t, "uma", *diag.Source)
	assert.Contains(t, diag.Message, "#")
}

func TestDidOpenValidSourceClearsDiagnostics(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}

	open(t, handler, rec, "let x = 1;")

	published := rec.last(t)
	assert.NotNil(t, published.Diagnostics)
	assert.Empty(t, published.Diagnostics)
}

func TestDidOpenPublishesWarnings(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}

	open(t, handler, rec, "let x = 1;;\nfunc puts(s: string) @requires(\"stdio.h\");")

	published := rec.last(t)
	require.Len(t, published.Diagnostics, 1, "the unused external has no position and is not published")

	diag := published.Diagnostics[0]
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diag.Severity)
	assert.Equal(t, "W0801", diag.Code.Value)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, diag.Range.Start)
	assert.Equal(t, "empty statement\nhelp: remove the stray `;`", diag.Message)
}

func TestDidChangeAppliesEdits(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, "let x = 1;")

	err := handler.TextDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 8},
					End:   protocol.Position{Line: 0, Character: 9},
				},
				Text: "(1",
			},
		},
	})
	require.NoError(t, err)

	published := rec.last(t)
	require.Len(t, published.Diagnostics, 1)
	assert.Equal(t, "E0110", published.Diagnostics[0].Code.Value)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, published.Diagnostics[0].Range.Start)
	assert.Contains(t, published.Diagnostics[0].Message, "expected `)`")

	err = handler.TextDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                3,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "let x = (1);"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.last(t).Diagnostics)
	assert.Len(t, rec.published, 3)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, "let = 1;")
	require.Len(t, rec.last(t).Diagnostics, 1)

	err := handler.TextDocumentDidClose(rec.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	published := rec.last(t)
	assert.Equal(t, testURI, published.URI)
	assert.NotNil(t, published.Diagnostics)
	assert.Empty(t, published.Diagnostics)
}

const outlineSource = `func add(a, b) {
  let s = a + b;
  return s;
}
let x = add(1, 2);;
`

func TestDocumentSymbol(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, outlineSource)

	result, err := handler.TextDocumentDocumentSymbol(rec.context(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 2)

	add := symbols[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, protocol.SymbolKindFunction, add.Kind)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, add.Range.Start)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 5},
		End:   protocol.Position{Line: 0, Character: 8},
	}, add.SelectionRange)
	require.NotNil(t, add.Detail)

	var children []string
	for _, child := range add.Children {
		children = append(children, child.Name)
		assert.Equal(t, protocol.SymbolKindVariable, child.Kind)
	}
	assert.Equal(t, []string{"a", "b", "s"}, children)

	x := symbols[1]
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, protocol.SymbolKindVariable, x.Kind)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 4, Character: 4},
		End:   protocol.Position{Line: 4, Character: 5},
	}, x.SelectionRange)
	assert.Equal(t, "let", *x.Detail)
}

func TestDocumentSymbolOnBrokenSource(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, "func add(a, b {")

	result, err := handler.TextDocumentDocumentSymbol(rec.context(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func completionLabels(t *testing.T, handler *lsp.UmaHandler, rec *recorder) map[string]protocol.CompletionItemKind {
	result, err := handler.TextDocumentCompletion(rec.context(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)

	labels := make(map[string]protocol.CompletionItemKind)
	for _, item := range list.Items {
		labels[item.Label] = *item.Kind
	}
	return labels
}

func TestCompletion(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, outlineSource)

	labels := completionLabels(t, handler, rec)
	assert.Equal(t, protocol.CompletionItemKindKeyword, labels["let"])
	assert.Equal(t, protocol.CompletionItemKindKeyword, labels["return"])
	assert.Equal(t, protocol.CompletionItemKindFunction, labels["add"])
	assert.Equal(t, protocol.CompletionItemKindVariable, labels["s"])
	assert.Equal(t, protocol.CompletionItemKindVariable, labels["x"])
	assert.Len(t, labels, 9+5)
}

func TestCompletionOnBrokenSourceOffersKeywords(t *testing.T) {
	handler := lsp.NewUmaHandler("uma-lsp", "test")
	rec := &recorder{}
	open(t, handler, rec, "let x = ")

	labels := completionLabels(t, handler, rec)
	assert.Len(t, labels, 9)
	assert.Contains(t, labels, "func")
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
