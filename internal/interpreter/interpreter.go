// Package interpreter evaluates syntax trees by walking them.
package interpreter

import (
	"github.com/podhmo/tinycalc/internal/ast"
)

// Evaluator interprets nodes against an environment it owns. Variables
// assigned by one Interpret call are visible to later calls on the same
// Evaluator. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	env *Environment
}

// New returns an Evaluator with an empty environment.
func New() *Evaluator {
	return &Evaluator{env: NewEnvironment()}
}

// Env returns the evaluator's environment.
func (e *Evaluator) Env() *Environment {
	return e.env
}

// Interpret evaluates node and returns its value. If and While may produce
// None. A While whose condition never becomes zero does not return.
func (e *Evaluator) Interpret(node ast.Node) (Value, error) {
	switch n := node.(type) {
	case *ast.Number:
		if n.Big != nil {
			return BigInt(n.Big), nil
		}
		return Int(n.Value), nil
	case *ast.Variable:
		return e.env.Get(n.Name), nil
	case *ast.BinaryOp:
		return e.binaryOp(n)
	case *ast.Assignment:
		v, err := e.Interpret(n.Value)
		if err != nil {
			return None, err
		}
		e.env.Set(n.Name, v)
		return v, nil
	case *ast.If:
		cond, err := e.Interpret(n.Cond)
		if err != nil {
			return None, err
		}
		if cond.Truthy() {
			return e.Interpret(n.Then)
		}
		if n.Else != nil {
			return e.Interpret(n.Else)
		}
		return None, nil
	case *ast.While:
		result := None
		for {
			cond, err := e.Interpret(n.Cond)
			if err != nil {
				return None, err
			}
			if !cond.Truthy() {
				return result, nil
			}
			result, err = e.Interpret(n.Body)
			if err != nil {
				return None, err
			}
		}
	default:
		return None, &EvalError{Kind: UnknownNode, Node: node}
	}
}

func (e *Evaluator) binaryOp(n *ast.BinaryOp) (Value, error) {
	left, err := e.Interpret(n.Left)
	if err != nil {
		return None, err
	}
	right, err := e.Interpret(n.Right)
	if err != nil {
		return None, err
	}
	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul:
		return arith(n.Op, left, right), nil
	case ast.Div:
		if !right.Truthy() {
			return None, &EvalError{Kind: DivisionByZero, Node: n}
		}
		return divide(left, right), nil
	default:
		return None, &EvalError{Kind: UnknownNode, Node: n}
	}
}
