package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic_Evaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"5", 5},
		{"2+3", 5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"8/4/2", 1},
		{"-4", -4},
		{"2*-3", -6},
		{"+-4", -4},
		{" 1 + 2 ", 3},
		{".5+.5", 1},
		{"5.", 5},
		{"1e3/10", 100},
		{"2.5e-1*4", 1},
		{"0.1+0.2", 0.30000000000000004},
	}
	ev := New()
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ev.Evaluate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArithmetic_NonFiniteIsNotAnError(t *testing.T) {
	ev := New()

	v, err := ev.Evaluate("1/0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = ev.Evaluate("0/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	v, err = ev.Evaluate("1e999")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestArithmetic_SyntaxErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"   ",
		"5-",
		"*5",
		"2..3",
		"1.2.3",
		"(1+2",
		"1+2)",
		"2**3",
		"1e",
		"abc",
		".",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := New().Evaluate(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "expected ErrSyntax, got %v", err)
		})
	}
}

func TestArithmetic_DeepNesting(t *testing.T) {
	expr := ""
	for i := 0; i < maxDepth+10; i++ {
		expr += "-"
	}
	expr += "1"
	_, err := New().Evaluate(expr)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestFunc_Adapter(t *testing.T) {
	var seen string
	ev := Func(func(expr string) (float64, error) {
		seen = expr
		return 42, nil
	})
	v, err := ev.Evaluate("6*7")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	assert.Equal(t, "6*7", seen)
}

func TestScanNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{".", 0},
		{"12+3", 2},
		{"1.5e-7x", 6},
		{"1e", 1},
		{".25", 3},
		{"3.", 2},
		{"7E+2", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScanNumber(tt.in), "ScanNumber(%q)", tt.in)
	}
}
