package errors

// Error codes for the uma toolchain.
//
// Error code ranges:
// E0100-E0109: Lexical errors
// E0110-E0199: Parser errors
// E0200-E0299: Code generation errors
// E0300-E0399: Project configuration errors
// E0800-E0899: Warning codes

const (
	// E0100: A character that starts no token
	ErrorUnexpectedCharacter = "E0100"

	// E0101: Number literal with more than one decimal point
	ErrorMalformedNumber = "E0101"

	// E0102: End of input inside a string literal
	ErrorUnterminatedString = "E0102"

	// E0110: A specific token was required
	ErrorExpectedToken = "E0110"

	// E0111: No statement or expression starts with this token
	ErrorUnexpectedToken = "E0111"

	// E0112: Parameter name repeated in one declaration
	ErrorDuplicateArgument = "E0112"

	// E0113: Attribute other than @requires
	ErrorInvalidAttribute = "E0113"

	// E0200: Call to a function that was never declared
	ErrorUnknownFunction = "E0200"

	// E0201: Construct the C backend cannot lower
	ErrorUnsupported = "E0201"

	// E0300: Invalid uma.toml
	ErrorInvalidConfig = "E0300"

	// W0801: Statement with no effect
	WarningEmptyStatement = "W0801"

	// W0802: External function that is never called
	WarningUnusedExternal = "W0802"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "Character is not part of any token"
	case ErrorMalformedNumber:
		return "Number literal has more than one decimal point"
	case ErrorUnterminatedString:
		return "String literal is missing its closing quote"
	case ErrorExpectedToken:
		return "A specific token was expected here"
	case ErrorUnexpectedToken:
		return "Token cannot start an expression"
	case ErrorDuplicateArgument:
		return "Parameter name is declared more than once"
	case ErrorInvalidAttribute:
		return "Invalid or unsupported attribute"
	case ErrorUnknownFunction:
		return "Function is called but never declared"
	case ErrorUnsupported:
		return "Construct is not supported by the C backend"
	case ErrorInvalidConfig:
		return "Project configuration is invalid"
	case WarningEmptyStatement:
		return "Statement has no effect"
	case WarningUnusedExternal:
		return "External function is declared but never called"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && (code[0] == 'W' || code >= "E0800" && code < "E0900")
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code == "":
		return "Unknown"
	case code[0] == 'W':
		return "Warning"
	case code >= "E0100" && code < "E0110":
		return "Lexer"
	case code >= "E0110" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Code Generation"
	case code >= "E0300" && code < "E0400":
		return "Configuration"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	default:
		return "Unknown"
	}
}
