package scanner

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol is matched by every LexError.
var ErrUnknownSymbol = errors.New("unknown symbol")

// LexError reports a character the scanner cannot turn into a token.
type LexError struct {
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %c", ErrUnknownSymbol, e.Char)
}

func (e *LexError) Is(target error) bool {
	return target == ErrUnknownSymbol
}
