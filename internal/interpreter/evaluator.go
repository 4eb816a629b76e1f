package interpreter

import (
	"math"
	"math/big"

	"github.com/podhmo/tinycalc/internal/ast"
)

// arith applies +, - or *. The result stays an integer when both operands
// are integers, leaving int64 for a big.Int when it does not fit; otherwise
// both are widened to reals.
func arith(op ast.Operator, left, right Value) Value {
	if left.IsFloat() || right.IsFloat() {
		a, b := left.Float64(), right.Float64()
		switch op {
		case ast.Add:
			return Float(a + b)
		case ast.Sub:
			return Float(a - b)
		default:
			return Float(a * b)
		}
	}

	if left.large == nil && right.large == nil {
		if n, ok := smallArith(op, left.i, right.i); ok {
			return Int(n)
		}
	}
	a, b := left.bigInt(), right.bigInt()
	n := new(big.Int)
	switch op {
	case ast.Add:
		n.Add(a, b)
	case ast.Sub:
		n.Sub(a, b)
	default:
		n.Mul(a, b)
	}
	return BigInt(n)
}

// smallArith reports false when the result overflows an int64.
func smallArith(op ast.Operator, a, b int64) (int64, bool) {
	switch op {
	case ast.Add:
		n := a + b
		return n, (n > a) == (b > 0)
	case ast.Sub:
		n := a - b
		return n, (n < a) == (b > 0)
	default:
		if a == 0 || b == 0 {
			return 0, true
		}
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		n := a * b
		return n, n/b == a
	}
}

// divide is true division; the caller rules out a zero divisor. Two integers
// are divided exactly and rounded once.
func divide(left, right Value) Value {
	if left.IsFloat() || right.IsFloat() {
		return Float(left.Float64() / right.Float64())
	}
	q, _ := new(big.Rat).SetFrac(left.bigInt(), right.bigInt()).Float64()
	return Float(q)
}
