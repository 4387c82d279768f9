package parser

import (
	"strings"
	"unicode/utf8"

	"asparse/token"
)

const byteOrderMark = "\xEF\xBB\xBF"

// Classify returns the single token starting at offset. It never looks
// behind offset, and for offset inside the source the returned token is at
// least one byte long. At or past the end of source it returns END.
func Classify(source string, offset int) token.Token {
	if offset >= len(source) {
		return token.Token{Kind: token.END, Pos: len(source), Class: token.UNKNOWN_CLASS}
	}
	if offset < 0 {
		offset = 0
	}

	kind, length := classify(source[offset:])
	return token.Token{
		Kind:   kind,
		Pos:    offset,
		Length: length,
		Class:  token.ClassOf(kind),
	}
}

func classify(s string) (token.Kind, int) {
	if n := scanWhitespace(s); n > 0 {
		return token.WHITESPACE, n
	}
	if kind, n := scanComment(s); n > 0 {
		return kind, n
	}
	if kind, n := scanConstant(s); n > 0 {
		return kind, n
	}
	if kind, n := scanWord(s); n > 0 {
		return kind, n
	}
	if n := scanIdentifier(s); n > 0 {
		return token.IDENTIFIER, n
	}

	_, size := utf8.DecodeRuneInString(s)
	return token.UNRECOGNIZED, size
}

func scanWhitespace(s string) int {
	n := 0
	for n < len(s) {
		switch s[n] {
		case ' ', '\t', '\r', '\n':
			n++
		default:
			if strings.HasPrefix(s[n:], byteOrderMark) {
				n += len(byteOrderMark)
				continue
			}
			return n
		}
	}
	return n
}

func scanComment(s string) (token.Kind, int) {
	if len(s) < 2 || s[0] != '/' {
		return token.UNRECOGNIZED, 0
	}

	switch s[1] {
	case '/':
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			return token.ONE_LINE_COMMENT, i + 1
		}
		return token.ONE_LINE_COMMENT, len(s)
	case '*':
		if i := strings.Index(s[2:], "*/"); i >= 0 {
			return token.MULTI_LINE_COMMENT, i + 4
		}
		return token.MULTI_LINE_COMMENT, len(s)
	}
	return token.UNRECOGNIZED, 0
}

func scanConstant(s string) (token.Kind, int) {
	c := s[0]
	switch {
	case isDigit(c):
		return scanNumber(s)
	case c == '.' && len(s) > 1 && isDigit(s[1]):
		return scanNumber(s)
	case c == '"' || c == '\'':
		return scanString(s)
	}
	return token.UNRECOGNIZED, 0
}

func scanNumber(s string) (token.Kind, int) {
	if len(s) > 1 && s[0] == '0' {
		if radix := radixOf(s[1]); radix > 0 {
			n := 2
			for n < len(s) && IsDigitInRadix(s[n], radix) {
				n++
			}
			return token.BITS_CONSTANT, n
		}
	}

	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}

	fractional := false
	if n < len(s) && s[n] == '.' {
		fractional = true
		n++
		for n < len(s) && isDigit(s[n]) {
			n++
		}
	}

	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}
		if m < len(s) && isDigit(s[m]) {
			fractional = true
			n = m
			for n < len(s) && isDigit(s[n]) {
				n++
			}
		}
	}

	if n < len(s) && (s[n] == 'f' || s[n] == 'F') {
		return token.FLOAT_CONSTANT, n + 1
	}
	if fractional {
		return token.DOUBLE_CONSTANT, n
	}
	return token.INT_CONSTANT, n
}

func radixOf(c byte) int {
	switch c {
	case 'b', 'B':
		return 2
	case 'o', 'O':
		return 8
	case 'd', 'D':
		return 10
	case 'x', 'X':
		return 16
	}
	return 0
}

// IsDigitInRadix reports whether c is a digit of the given radix. Letters
// count as digits with values from 10 upward.
func IsDigitInRadix(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}

func scanString(s string) (token.Kind, int) {
	if len(s) >= 6 && strings.HasPrefix(s, `"""`) {
		if i := strings.Index(s[3:], `"""`); i >= 0 {
			return token.HEREDOC_STRING_CONSTANT, i + 6
		}
		return token.HEREDOC_STRING_CONSTANT, len(s)
	}

	quote := s[0]
	evenSlashes := true
	multiline := false
	for n := 1; n < len(s); n++ {
		c := s[n]
		switch {
		case c == '\n':
			multiline = true
			evenSlashes = true
		case c == quote && evenSlashes:
			if multiline {
				return token.MULTILINE_STRING_CONSTANT, n + 1
			}
			return token.STRING_CONSTANT, n + 1
		case c == '\\':
			evenSlashes = !evenSlashes
		default:
			evenSlashes = true
		}
	}
	return token.NON_TERMINATED_STRING_CONSTANT, len(s)
}

func scanWord(s string) (token.Kind, int) {
	for _, w := range token.Words(s[0]) {
		if !strings.HasPrefix(s, w.Spelling) {
			continue
		}
		n := len(w.Spelling)
		if isWordChar(w.Spelling[n-1]) && n < len(s) && isWordChar(s[n]) {
			continue
		}
		return w.Kind, n
	}
	return token.UNRECOGNIZED, 0
}

func scanIdentifier(s string) int {
	if !isAlpha(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isWordChar(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isWordChar(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// Scanner tokenizes a whole source buffer. The parser does not use it; it
// drives Classify lazily through a TokenStream.
type Scanner struct {
	source string
	offset int
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// ScanTokens returns every token in the source, ending with END. Trivia is
// dropped unless includeTrivia is set.
func (s *Scanner) ScanTokens(includeTrivia bool) []token.Token {
	var tokens []token.Token
	for {
		tok := Classify(s.source, s.offset)
		s.offset = tok.End()
		if tok.Kind == token.END {
			return append(tokens, tok)
		}
		if tok.IsTrivia() && !includeTrivia {
			continue
		}
		tokens = append(tokens, tok)
	}
}
