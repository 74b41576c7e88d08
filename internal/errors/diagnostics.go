package errors

import (
	stderrors "errors"
	"unicode/utf8"

	"uma/internal/parser"
	"uma/token"
)

// DiagnosticBuilder provides a fluent interface for assembling a CompilerError
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a builder for an error-level diagnostic
func NewDiagnostic(code, message string, pos token.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a builder for a warning-level diagnostic
func NewWarning(code, message string, pos token.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warning
	return b
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// FromScanError converts a lexical failure into a diagnostic.
func FromScanError(err *parser.ScanError) CompilerError {
	b := NewDiagnostic(scanCode(err.Reason), err.Message, err.Position).
		WithLength(max(1, err.Length))

	switch err.Reason {
	case parser.UnterminatedString:
		b.WithHelp("close the literal with the quote character that opened it")
	case parser.MalformedNumber:
		b.WithNote("a number literal may contain at most one `.`")
	case parser.UnexpectedCharacter:
		b.WithNote("this character cannot start any token")
	}

	return b.Build()
}

func scanCode(reason parser.ScanErrorReason) string {
	switch reason {
	case parser.MalformedNumber:
		return ErrorMalformedNumber
	case parser.UnterminatedString:
		return ErrorUnterminatedString
	default:
		return ErrorUnexpectedCharacter
	}
}

// FromParseError converts a syntactic failure into a diagnostic that
// underlines the offending token.
func FromParseError(err *parser.ParseError) CompilerError {
	b := NewDiagnostic(parseCode(err.Kind), err.Message, err.Position()).
		WithLength(tokenLength(err.Token))

	switch err.Kind {
	case parser.ExpectedToken:
		if err.Token.Kind == token.EOF {
			b.WithNote("input ended before the construct was complete")
		}
	case parser.DuplicateArgument:
		b.WithHelp("parameter names must be unique within a declaration")
	case parser.InvalidAttribute:
		b.WithSuggestion(`declare foreign functions with @requires("header.h")`)
	}

	return b.Build()
}

func parseCode(kind parser.ErrorKind) string {
	switch kind {
	case parser.UnexpectedToken:
		return ErrorUnexpectedToken
	case parser.DuplicateArgument:
		return ErrorDuplicateArgument
	case parser.InvalidAttribute:
		return ErrorInvalidAttribute
	default:
		return ErrorExpectedToken
	}
}

// Diagnoser is implemented by errors that know how to describe themselves.
type Diagnoser interface {
	Diagnostic() CompilerError
}

// FromError converts any error returned by the front end. Errors without a
// source location produce a diagnostic with a zero position.
func FromError(err error) CompilerError {
	var scanErr *parser.ScanError
	if stderrors.As(err, &scanErr) {
		return FromScanError(scanErr)
	}

	var parseErr *parser.ParseError
	if stderrors.As(err, &parseErr) {
		return FromParseError(parseErr)
	}

	var d Diagnoser
	if stderrors.As(err, &d) {
		return d.Diagnostic()
	}

	return CompilerError{Level: Error, Message: err.Error()}
}

// tokenLength is the width of tok in source characters. Tokens that did
// not come from the scanner fall back to their spelling.
func tokenLength(tok token.Token) int {
	switch {
	case tok.Kind == token.EOF:
		return 1
	case tok.Length > 0:
		return tok.Length
	}
	return max(1, utf8.RuneCountInString(tok.Text()))
}
