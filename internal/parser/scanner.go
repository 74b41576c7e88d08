package parser

import (
	"fmt"
	"strings"
	"unicode"

	"uma/token"
)

// Scanner turns source text into tokens. It always tokenizes the whole input
// up front and stops at the first lexical error.
type Scanner struct {
	cursor *Cursor
	tokens []token.Token
}

func NewScanner(source string) *Scanner {
	return &Scanner{cursor: NewCursor(source)}
}

// ScanTokens returns the full token sequence, or the first *ScanError. No
// partial sequence is returned on failure.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.cursor.AtEnd() {
		if err := s.scanToken(); err != nil {
			s.tokens = nil
			return nil, err
		}
	}
	return s.tokens, nil
}

// End is the position just past the last scalar, used for synthetic
// end-of-input tokens.
func (s *Scanner) End() token.Position {
	return s.cursor.Position()
}

func (s *Scanner) scanToken() error {
	c := s.cursor.Current()

	switch {
	case unicode.IsSpace(c):
		s.cursor.Advance()
		return nil
	case isAlpha(c):
		s.scanIdentifier()
		return nil
	case isDigit(c):
		return s.scanNumber()
	case c == '\'' || c == '"':
		return s.scanString(c)
	case c == '.':
		s.scanDot()
		return nil
	default:
		return s.scanCharacter(c)
	}
}

func (s *Scanner) addToken(kind token.Kind, literal string, pos token.Position) {
	s.tokens = append(s.tokens, token.Token{
		Kind:     kind,
		Literal:  literal,
		Position: pos,
		Length:   s.cursor.Since(pos),
	})
}

func (s *Scanner) errorAt(reason ScanErrorReason, pos token.Position, length int, format string, args ...any) *ScanError {
	return &ScanError{
		Reason:   reason,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Length:   length,
	}
}

func (s *Scanner) scanIdentifier() {
	start := s.cursor.Position()
	var out strings.Builder

	for !s.cursor.AtEnd() && (isAlpha(s.cursor.Current()) || unicode.IsDigit(s.cursor.Current())) {
		out.WriteRune(s.cursor.Current())
		s.cursor.Advance()
	}

	text := out.String()
	kind := token.LookupIdent(text)
	if kind == token.IDENTIFIER {
		s.addToken(kind, text, start)
		return
	}
	s.addToken(kind, "", start)
}

// scanNumber reads digits with optional `_` separators and at most one
// decimal point. Separators never reach the payload.
func (s *Scanner) scanNumber() error {
	start := s.cursor.Position()
	var out strings.Builder
	seenDot := false

	for !s.cursor.AtEnd() {
		c := s.cursor.Current()
		if c == '_' {
			s.cursor.Advance()
			continue
		}
		if c == '.' {
			if seenDot {
				return s.errorAt(MalformedNumber, s.cursor.Position(), 1, "more than one decimal point in number literal")
			}
			seenDot = true
		} else if !isDigit(c) {
			break
		}

		out.WriteRune(c)
		s.cursor.Advance()
	}

	if seenDot {
		s.addToken(token.FLOAT, out.String(), start)
	} else {
		s.addToken(token.NUMBER, out.String(), start)
	}
	return nil
}

// scanString reads a literal delimited by delim. Recognised escapes are \n,
// \t and \; any other escaped character passes through unchanged.
func (s *Scanner) scanString(delim rune) error {
	start := s.cursor.Position()
	var out strings.Builder

	s.cursor.Advance() // opening delimiter
	for {
		if s.cursor.AtEnd() {
			return s.errorAt(UnterminatedString, start, s.cursor.Since(start), "unterminated string literal")
		}

		c := s.cursor.Current()
		if c == delim {
			break
		}

		if c == '\\' {
			if _, ok := s.cursor.Advance(); !ok {
				return s.errorAt(UnterminatedString, start, s.cursor.Since(start), "unterminated string literal")
			}
			switch esc := s.cursor.Current(); esc {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			default:
				out.WriteRune(esc)
			}
			s.cursor.Advance()
			continue
		}

		out.WriteRune(c)
		s.cursor.Advance()
	}

	s.cursor.Advance() // closing delimiter
	s.addToken(token.STRING, out.String(), start)
	return nil
}

// scanDot produces the variadic marker for `...` and DOT otherwise.
func (s *Scanner) scanDot() {
	start := s.cursor.Position()
	second, ok1 := s.cursor.PeekN(1)
	third, ok2 := s.cursor.PeekN(2)

	if ok1 && ok2 && second == '.' && third == '.' {
		s.cursor.Advance()
		s.cursor.Advance()
		s.cursor.Advance()
		s.addToken(token.ELLIPSIS, "", start)
		return
	}

	s.cursor.Advance()
	s.addToken(token.DOT, "", start)
}

func (s *Scanner) scanCharacter(c rune) error {
	pos := s.cursor.Position()
	kind, ok := token.LookupPunct(c)
	if !ok {
		return s.errorAt(UnexpectedCharacter, pos, 1, "unexpected character %q", c)
	}

	s.cursor.Advance()
	s.addToken(kind, "", pos)
	return nil
}

// Helper functions.

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
