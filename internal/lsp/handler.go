package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"uma/grammar"
	"uma/internal/parser"
)

var log = commonlog.GetLogger("uma.lsp")

// document is the editor's current view of one file.
type document struct {
	text   string
	result *parser.ParseResult
	err    error
}

// UmaHandler implements the LSP server handlers for the uma language
type UmaHandler struct {
	Name    string
	Version string

	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*document
}

// NewUmaHandler creates and returns a new UmaHandler instance
func NewUmaHandler(name, version string) *UmaHandler {
	return &UmaHandler{
		Name:      name,
		Version:   version,
		documents: make(map[protocol.DocumentUri]*document),
	}
}

// Protocol wires the handler methods into a glsp dispatch table.
func (h *UmaHandler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentDocumentSymbol:     h.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *UmaHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.Name,
			Version: &h.Version,
		},
	}, nil
}

func (h *UmaHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *UmaHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *UmaHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *UmaHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	doc := h.update(params.TextDocument.URI, params.TextDocument.Text)
	publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

// TextDocumentDidChange applies the edits in order and republishes diagnostics
func (h *UmaHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	h.mu.RLock()
	text := ""
	if doc, ok := h.documents[params.TextDocument.URI]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
			} else {
				text = applyEdit(text, *c.Range, c.Text)
			}
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	doc := h.update(params.TextDocument.URI, text)
	publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *UmaHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.documents, params.TextDocument.URI)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, &document{})
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *UmaHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	var tokens []SemanticToken
	if doc.result != nil {
		tokens = collectSemanticTokens(doc.text, doc.result.Tokens)
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// TextDocumentDocumentSymbol lists functions and variables with their ranges
func (h *UmaHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	symbols := []protocol.DocumentSymbol{}
	program, err := grammar.Parse(params.TextDocument.URI, doc.text)
	if err != nil {
		// the parser's diagnostic already reports the problem
		log.Debugf("no outline for %s: %s", params.TextDocument.URI, err)
		return symbols, nil
	}

	for _, sym := range grammar.Outline(program) {
		symbols = append(symbols, documentSymbol(sym))
	}
	return symbols, nil
}

// TextDocumentCompletion offers keywords and the names declared in the file
func (h *UmaHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(params.TextDocument.URI, doc.text),
	}, nil
}

// update parses text and stores it as the current state of uri.
func (h *UmaHandler) update(uri protocol.DocumentUri, text string) *document {
	result, err := parser.ParseSourceWithTokens(text)
	doc := &document{text: text, result: result, err: err}

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()
	return doc
}

// get returns the open document, reading it from disk when the client
// asks about a file it never opened.
func (h *UmaHandler) get(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.documents[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc = h.update(uri, string(content))
	publishDiagnostics(ctx, uri, doc)
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

// applyEdit replaces the range r of text. Characters are counted in runes.
func applyEdit(text string, r protocol.Range, replacement string) string {
	start := offsetOf(text, r.Start)
	end := offsetOf(text, r.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + replacement + text[end:]
}

func offsetOf(text string, pos protocol.Position) int {
	line, char := uint32(0), uint32(0)
	for i, r := range text {
		if line == pos.Line && char == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			char = 0
			continue
		}
		char++
	}
	return len(text)
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
