package parser

import (
	"fmt"

	"uma/token"
)

type ScanErrorReason int

const (
	UnexpectedCharacter ScanErrorReason = iota
	MalformedNumber
	UnterminatedString
)

// ScanError is a fatal lexical error. Scanning stops at the first one.
type ScanError struct {
	Reason   ScanErrorReason
	Message  string
	Position token.Position // line, column, offset
	Length   int            // source characters covered, counted in runes
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

type ErrorKind int

const (
	// ExpectedToken: a specific kind was required but the stream held
	// something else, or nothing.
	ExpectedToken ErrorKind = iota
	// UnexpectedToken: no expression can start with the current token.
	UnexpectedToken
	DuplicateArgument
	InvalidAttribute
)

func (k ErrorKind) String() string {
	switch k {
	case ExpectedToken:
		return "ExpectedToken"
	case UnexpectedToken:
		return "UnexpectedToken"
	case DuplicateArgument:
		return "DuplicateArgument"
	case InvalidAttribute:
		return "InvalidAttribute"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is a syntactic error. Token is the offending token, or a
// synthetic EOF token positioned at the end of input.
type ParseError struct {
	Kind    ErrorKind
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Token.Position, e.Message)
}

// Position is where the error points in the source.
func (e *ParseError) Position() token.Position {
	return e.Token.Position
}

func newParseError(kind ErrorKind, tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}
