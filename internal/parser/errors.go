package parser

import (
	"errors"
	"fmt"

	"github.com/podhmo/tinycalc/internal/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	UnexpectedKind ErrorKind = iota + 1
	UnexpectedValue
	UnexpectedEnd
	InvalidPrimary
)

var (
	ErrUnexpectedKind  = errors.New("unexpected token kind")
	ErrUnexpectedValue = errors.New("unexpected token value")
	ErrUnexpectedEnd   = errors.New("unexpected end of input")
	ErrInvalidPrimary  = errors.New("number or identifier expected")
)

var sentinels = map[ErrorKind]error{
	UnexpectedKind:  ErrUnexpectedKind,
	UnexpectedValue: ErrUnexpectedValue,
	UnexpectedEnd:   ErrUnexpectedEnd,
	InvalidPrimary:  ErrInvalidPrimary,
}

func (k ErrorKind) String() string {
	if err, ok := sentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports why the parser stopped. Got is nil for UnexpectedEnd.
type ParseError struct {
	Kind ErrorKind
	Got  *token.Token
	Want string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedKind:
		return fmt.Sprintf("expected token of type %s, received %s", e.Want, e.Got.Kind)
	case UnexpectedValue:
		return fmt.Sprintf("expected value %s, received %v", e.Want, e.Got.Value())
	case UnexpectedEnd:
		return fmt.Sprintf("unexpected end of input, expected %s", e.Want)
	case InvalidPrimary:
		return fmt.Sprintf("number or identifier expected, received %s", e.Got)
	}
	return e.Kind.String()
}

// Unwrap returns the sentinel matching e.Kind.
func (e *ParseError) Unwrap() error {
	return sentinels[e.Kind]
}
