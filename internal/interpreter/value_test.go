package interpreter

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"none", None, "None"},
		{"int", Int(14), "14"},
		{"negativeInt", Int(-3), "-3"},
		{"integralReal", Float(5), "5.0"},
		{"fraction", Float(3.5), "3.5"},
		{"third", Float(1.0 / 3), "0.3333333333333333"},
		{"largeReal", Float(1234567), "1234567.0"},
		{"hugeReal", Float(1e16), "1e+16"},
		{"tinyReal", Float(1e-5), "1e-05"},
		{"negativeZero", Float(math.Copysign(0, -1)), "-0.0"},
		{"inf", Float(math.Inf(1)), "inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.String())
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	assert.False(t, None.Truthy())
	assert.False(t, Int(0).Truthy())
	assert.False(t, Float(0).Truthy())
	assert.True(t, Int(-1).Truthy())
	assert.True(t, Float(0.25).Truthy())
}

func TestValue_Conversions(t *testing.T) {
	assert.Equal(t, int64(3), Float(3.9).Int64())
	assert.Equal(t, 2.0, Int(2).Float64())
	assert.True(t, Float(1).IsFloat())
	assert.False(t, Int(1).IsFloat())
	assert.True(t, Value{}.IsNone())
}

func TestBigInt(t *testing.T) {
	assert.Equal(t, Int(42), BigInt(big.NewInt(42)), "values that fit use int64")

	n := new(big.Int).Lsh(big.NewInt(1), 70)
	v := BigInt(n)
	n.SetInt64(0)
	assert.Equal(t, "1180591620717411303424", v.String(), "BigInt copies its argument")
	assert.True(t, v.Truthy())
	assert.False(t, v.IsFloat())
	assert.Equal(t, 1180591620717411303424.0, v.Float64())

	huge := new(big.Int).Lsh(big.NewInt(1), 2000)
	assert.True(t, math.IsInf(BigInt(huge).Float64(), 1))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "1180591620717411303424", string(data))
}

func TestValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Value{
		"i":    Int(7),
		"f":    Float(2.5),
		"none": None,
		"inf":  Float(math.Inf(-1)),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"i":7,"f":2.5,"none":null,"inf":"-inf"}`, string(data))
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	assert.Equal(t, 0, env.Len())
	assert.Equal(t, Int(0), env.Get("a"))

	env.Set("b", Int(2))
	env.Set("a", Float(0.5))
	env.Set("b", Int(3))

	assert.Equal(t, 2, env.Len())
	assert.Equal(t, []string{"a", "b"}, env.Names())
	assert.Equal(t, Int(3), env.Get("b"))

	snap := env.Snapshot()
	snap["c"] = Int(1)
	_, ok := env.Lookup("c")
	assert.False(t, ok, "snapshot is a copy")
}
