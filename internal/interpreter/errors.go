package interpreter

import (
	"errors"
	"fmt"

	"github.com/podhmo/tinycalc/internal/ast"
)

// ErrorKind classifies an EvalError.
type ErrorKind int

const (
	DivisionByZero ErrorKind = iota + 1
	UnknownNode
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnknownNode    = errors.New("unknown node type")
)

// EvalError reports a failure while evaluating Node.
type EvalError struct {
	Kind ErrorKind
	Node ast.Node
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case DivisionByZero:
		return ErrDivisionByZero.Error()
	case UnknownNode:
		if op, ok := e.Node.(*ast.BinaryOp); ok {
			return fmt.Sprintf("%s: BinaryOp with operator %q", ErrUnknownNode, op.Op)
		}
		return fmt.Sprintf("%s: %T", ErrUnknownNode, e.Node)
	}
	return fmt.Sprintf("evaluation failed: %T", e.Node)
}

func (e *EvalError) Unwrap() error {
	switch e.Kind {
	case DivisionByZero:
		return ErrDivisionByZero
	case UnknownNode:
		return ErrUnknownNode
	}
	return nil
}
