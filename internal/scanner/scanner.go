// Package scanner converts source text into tokens.
package scanner

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/podhmo/tinycalc/internal/token"
)

// Scanner performs lexical analysis on a source string.
type Scanner struct {
	src    string
	cursor int
}

// New creates a scanner for src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Tokenize scans src completely and returns its tokens.
func Tokenize(src string) ([]token.Token, error) {
	return New(src).Tokenize()
}

// Tokenize scans the remaining input. The first unknown character stops the
// scan; no partial token list is returned.
func (s *Scanner) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for s.cursor < len(s.src) {
		ch, size := utf8.DecodeRuneInString(s.src[s.cursor:])
		switch {
		case unicode.IsSpace(ch):
			s.cursor += size
		case isDigit(ch):
			tokens = append(tokens, s.scanNumber())
		case unicode.IsLetter(ch):
			tokens = append(tokens, s.scanWord())
		case strings.ContainsRune(token.Operators, ch):
			tokens = append(tokens, token.Op(string(ch)))
			s.cursor += size
		default:
			return nil, &LexError{Char: ch}
		}
	}
	return tokens, nil
}

// scanNumber reads a maximal digit run. Runs too long for an int64 are kept
// as a big.Int, so every run scans.
func (s *Scanner) scanNumber() token.Token {
	start := s.cursor
	for s.cursor < len(s.src) && isDigit(rune(s.src[s.cursor])) {
		s.cursor++
	}
	text := s.src[start:s.cursor]
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return token.Token{Kind: token.NUMBER, Text: text, Number: n}
	}
	n, _ := new(big.Int).SetString(text, 10)
	return token.Token{Kind: token.NUMBER, Text: text, Big: n}
}

func (s *Scanner) scanWord() token.Token {
	start := s.cursor
	for s.cursor < len(s.src) {
		ch, size := utf8.DecodeRuneInString(s.src[s.cursor:])
		if !unicode.IsLetter(ch) && !isDigit(ch) {
			break
		}
		s.cursor += size
	}
	word := s.src[start:s.cursor]
	if token.IsKeyword(word) {
		return token.Keyword(word)
	}
	return token.Ident(word)
}

// isDigit accepts ASCII digits only. Other Unicode decimal digits are
// unknown symbols.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
