// Package ast defines the syntax tree built by the parser.
//
// Node is a closed set: only the six types in this file implement it, and
// a tree is never shared or modified once the parser returns it.
package ast

import (
	"fmt"
	"math/big"
	"strings"
)

// Node is any node of the tree.
type Node interface {
	fmt.Stringer
	node()
}

// Operator is the operator of a BinaryOp.
type Operator string

const (
	Add Operator = "+"
	Sub Operator = "-"
	Mul Operator = "*"
	Div Operator = "/"
)

// Number is an integer literal. Big holds literals that do not fit in an
// int64; Value is used otherwise.
type Number struct {
	Value int64
	Big   *big.Int
}

// Variable is a reference to a named variable.
type Variable struct {
	Name string
}

// BinaryOp is an arithmetic operation on two operands.
type BinaryOp struct {
	Left  Node
	Op    Operator
	Right Node
}

// Assignment stores the result of Value under Name.
type Assignment struct {
	Name  string
	Value Node
}

// If selects Then when Cond is non-zero, else Else (which may be nil).
type If struct {
	Cond Node
	Then Node
	Else Node
}

// While evaluates Body as long as Cond is non-zero.
type While struct {
	Cond Node
	Body Node
}

func (*Number) node()     {}
func (*Variable) node()   {}
func (*BinaryOp) node()   {}
func (*Assignment) node() {}
func (*If) node()         {}
func (*While) node()      {}

func (n *Number) String() string {
	if n.Big != nil {
		return fmt.Sprintf("Number(%s)", n.Big)
	}
	return fmt.Sprintf("Number(%d)", n.Value)
}

func (n *Variable) String() string { return fmt.Sprintf("Variable(%s)", n.Name) }

func (n *BinaryOp) String() string {
	return fmt.Sprintf("BinaryOp(%s, %s, %s)", str(n.Left), n.Op, str(n.Right))
}

func (n *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s, %s)", n.Name, str(n.Value))
}

func (n *If) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "If(%s, %s", str(n.Cond), str(n.Then))
	if n.Else != nil {
		fmt.Fprintf(&b, ", %s", str(n.Else))
	}
	b.WriteByte(')')
	return b.String()
}

func (n *While) String() string {
	return fmt.Sprintf("While(%s, %s)", str(n.Cond), str(n.Body))
}

func str(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}
