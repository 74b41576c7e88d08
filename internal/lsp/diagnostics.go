package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"uma/internal/errors"
	"uma/internal/semantic"
)

const diagnosticSource = "uma"

// documentDiagnostics reports the parse error of doc, or the warnings of a
// document that parsed. The slice is never nil so an empty list clears the
// client's view.
func documentDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		return append(diagnostics, ConvertCompilerError(errors.FromError(doc.err)))
	}
	if doc.result == nil {
		return diagnostics
	}

	for _, warning := range semantic.NewAnalyzer().Analyze(doc.result.Statements) {
		// warnings without a location have nowhere to be shown
		if warning.HasPosition() {
			diagnostics = append(diagnostics, ConvertCompilerError(warning))
		}
	}
	return diagnostics
}

// ConvertCompilerError transforms a rendered compiler error into an LSP
// diagnostic. Notes and help text follow the message on separate lines.
func ConvertCompilerError(ce errors.CompilerError) protocol.Diagnostic {
	line, char := uint32(0), uint32(0)
	if ce.HasPosition() {
		line = uint32(ce.Position.Line - 1) // Convert to 0-based indexing
		char = uint32(ce.Position.Column)
	}
	length := ce.Length
	if length <= 0 {
		length = 1
	}

	severity := protocol.DiagnosticSeverityError
	if ce.Level == errors.Warning || errors.IsWarning(ce.Code) {
		severity = protocol.DiagnosticSeverityWarning
	}

	message := []string{ce.Message}
	for _, note := range ce.Notes {
		message = append(message, "note: "+note)
	}
	if ce.HelpText != "" {
		message = append(message, "help: "+ce.HelpText)
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: char},
			End:   protocol.Position{Line: line, Character: char + uint32(length)},
		},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString(diagnosticSource),
		Message:  strings.Join(message, "\n"),
	}
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, doc *document) {
	diagnostics := documentDiagnostics(doc)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrString(s string) *string {
	return &s
}
