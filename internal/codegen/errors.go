package codegen

import (
	stderrors "errors"
	"fmt"

	"uma/internal/errors"
	"uma/token"
)

var (
	// ErrUnknownFunction is returned for a call to a name that no function
	// declaration introduces.
	ErrUnknownFunction = stderrors.New("unknown function")

	// ErrUnsupported is returned for valid source the C backend cannot lower.
	ErrUnsupported = stderrors.New("unsupported construct")
)

// Error describes a lowering failure. It unwraps to one of the sentinel
// errors above.
type Error struct {
	Err    error
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostic lets the CLI render lowering failures like parse errors. The
// AST carries no positions, so the diagnostic has none.
func (e *Error) Diagnostic() errors.CompilerError {
	code := errors.ErrorUnsupported
	if stderrors.Is(e.Err, ErrUnknownFunction) {
		code = errors.ErrorUnknownFunction
	}
	return errors.NewDiagnostic(code, e.Detail, token.Position{}).Build()
}

func unknownFunction(name string) *Error {
	return &Error{Err: ErrUnknownFunction, Detail: fmt.Sprintf("call to undeclared function `%s`", name)}
}

func unsupported(format string, args ...any) *Error {
	return &Error{Err: ErrUnsupported, Detail: fmt.Sprintf(format, args...)}
}
