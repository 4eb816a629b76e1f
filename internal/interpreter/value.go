package interpreter

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	noneKind valueKind = iota
	intKind
	floatKind
)

// Value is the result of evaluating a node: an integer, a real, or no value
// at all. The zero Value is the no-value result.
//
// Integers have no fixed width. An integer that fits in an int64 is held in
// i; larger ones are held in large, which is never shared or mutated.
type Value struct {
	kind  valueKind
	i     int64
	large *big.Int
	f     float64
}

// None is the no-value result of an If without a matching branch or a While
// whose body never ran.
var None = Value{}

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: intKind, i: i} }

// BigInt returns an integer value for n. The value does not alias n.
func BigInt(n *big.Int) Value {
	if n.IsInt64() {
		return Int(n.Int64())
	}
	return Value{kind: intKind, large: new(big.Int).Set(n)}
}

// Float returns a real value.
func Float(f float64) Value { return Value{kind: floatKind, f: f} }

// IsNone reports whether v is the no-value result.
func (v Value) IsNone() bool { return v.kind == noneKind }

// IsFloat reports whether v holds a real.
func (v Value) IsFloat() bool { return v.kind == floatKind }

// Int64 returns v as an int64, truncating reals. Integers outside the int64
// range keep only their low 64 bits.
func (v Value) Int64() int64 {
	switch {
	case v.kind == floatKind:
		return int64(v.f)
	case v.large != nil:
		return v.large.Int64()
	}
	return v.i
}

// bigInt returns an integer v as a big.Int the caller must not modify.
func (v Value) bigInt() *big.Int {
	if v.large != nil {
		return v.large
	}
	return big.NewInt(v.i)
}

// Float64 returns v as a real, rounding to the nearest float64. Integers too
// large for a float64 become an infinity.
func (v Value) Float64() float64 {
	switch {
	case v.kind == floatKind:
		return v.f
	case v.large != nil:
		f, _ := new(big.Float).SetInt(v.large).Float64()
		return f
	}
	return float64(v.i)
}

// Truthy reports whether v is non-zero.
func (v Value) Truthy() bool {
	switch v.kind {
	case intKind:
		return v.large != nil || v.i != 0
	case floatKind:
		return v.f != 0
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case intKind:
		if v.large != nil {
			return v.large.String()
		}
		return strconv.FormatInt(v.i, 10)
	case floatKind:
		return formatFloat(v.f)
	}
	return "None"
}

// MarshalJSON encodes integers and finite reals as numbers, no-value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case intKind:
		if v.large != nil {
			return v.large.MarshalJSON()
		}
		return json.Marshal(v.i)
	case floatKind:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return json.Marshal(formatFloat(v.f))
		}
		return json.Marshal(v.f)
	}
	return []byte("null"), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
