// Package token defines the lexical units produced by the scanner.
package token

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// Kind represents the type of a token.
type Kind uint8

const (
	NUMBER Kind = iota + 1
	IDENTIFIER
	KEYWORD
	OPERATOR
)

var kindNames = map[Kind]string{
	NUMBER:     "NUMBER",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	OPERATOR:   "OPERATOR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Reserved words. def is reserved but no production uses it.
const (
	If    = "if"
	Else  = "else"
	While = "while"
	Def   = "def"
)

// Operators lists every single-character operator the scanner accepts.
const Operators = "+-*/()=<>"

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	switch word {
	case If, Else, While, Def:
		return true
	}
	return false
}

// Token is an immutable lexical unit.
// Number and Big are only meaningful for NUMBER tokens: Big is set when the
// literal does not fit in an int64, Number otherwise. Text holds the literal.
type Token struct {
	Kind   Kind     `json:"kind"`
	Text   string   `json:"text"`
	Number int64    `json:"number,omitempty"`
	Big    *big.Int `json:"big,omitempty"`
}

// Num returns a NUMBER token.
func Num(n int64) Token {
	return Token{Kind: NUMBER, Text: strconv.FormatInt(n, 10), Number: n}
}

// BigNum returns a NUMBER token for n, using Number when n fits in an int64.
func BigNum(n *big.Int) Token {
	if n.IsInt64() {
		return Num(n.Int64())
	}
	return Token{Kind: NUMBER, Text: n.String(), Big: new(big.Int).Set(n)}
}

// Ident returns an IDENTIFIER token.
func Ident(name string) Token { return Token{Kind: IDENTIFIER, Text: name} }

// Keyword returns a KEYWORD token.
func Keyword(word string) Token { return Token{Kind: KEYWORD, Text: word} }

// Op returns an OPERATOR token.
func Op(op string) Token { return Token{Kind: OPERATOR, Text: op} }

// Value returns the token's value: int64 or *big.Int for numbers, the
// literal otherwise.
func (t Token) Value() any {
	if t.Kind == NUMBER {
		if t.Big != nil {
			return t.Big
		}
		return t.Number
	}
	return t.Text
}

// Is reports whether the token has the given kind and literal.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%v)", t.Kind, t.Value())
}
