package calc

import (
	"errors"
	"strings"
	"testing"

	"keycalc/internal/evaluator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendAll(t *testing.T, a *Accumulator, tokens ...string) Result {
	t.Helper()
	var r Result
	for _, tok := range tokens {
		r = a.Append(tok)
		require.NoError(t, r.Err, "append %q", tok)
	}
	return r
}

func TestAppend_Concatenates(t *testing.T) {
	a := New(nil)
	r := appendAll(t, a, "1", "2", ".", "5", "+", "+", "3")
	assert.Equal(t, "12.5++3", r.Display)
	assert.Equal(t, "12.5++3", a.Text())
	assert.False(t, a.PendingReset())
}

func TestAppend_RejectsUnknownTokens(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "7")

	for _, tok := range []string{"", "a", "12", "(", "%", "=", "÷"} {
		r := a.Append(tok)
		assert.ErrorIs(t, r.Err, ErrInvalidToken, "token %q", tok)
		assert.False(t, r.Failed())
		assert.Equal(t, "7", a.Text())
	}
}

func TestAppend_ResetsAfterResult(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "2", "+", "3")
	r := a.Evaluate()
	require.NoError(t, r.Err)
	assert.Equal(t, "5", r.Display)
	assert.True(t, a.PendingReset())

	r = a.Append("7")
	assert.Equal(t, "7", r.Display)
	assert.False(t, a.PendingReset())
}

func TestAppend_ConcatenationSinceLastReset(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "9")
	a.SquareRoot()

	tokens := []string{"4", "*", "2", ".", "1"}
	appendAll(t, a, tokens...)
	assert.Equal(t, strings.Join(tokens, ""), a.Text())
}

func TestClear(t *testing.T) {
	for name, setup := range map[string]func(a *Accumulator){
		"empty":   func(a *Accumulator) {},
		"typing":  func(a *Accumulator) { a.Append("3"); a.Append("+") },
		"result":  func(a *Accumulator) { a.Append("3"); a.Evaluate() },
		"error":   func(a *Accumulator) { a.Reciprocal() },
		"negated": func(a *Accumulator) { a.Append("3"); a.ToggleSign() },
	} {
		t.Run(name, func(t *testing.T) {
			a := New(nil)
			setup(a)
			r := a.Clear()
			assert.Equal(t, "", r.Display)
			assert.Equal(t, State{}, a.State())
		})
	}
}

func TestDeleteLast(t *testing.T) {
	a := New(nil)
	a.DeleteLast()
	a.DeleteLast()
	assert.Equal(t, State{}, a.State())

	appendAll(t, a, "1", "2", MultiplySign)
	r := a.DeleteLast()
	assert.Equal(t, "12", r.Display)
	r = a.DeleteLast()
	assert.Equal(t, "1", r.Display)
}

func TestDeleteLast_KeepsPendingReset(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "4", "4")
	a.Evaluate()
	a.DeleteLast()
	assert.Equal(t, "4", a.Text())
	assert.True(t, a.PendingReset())
}

func TestToggleSign(t *testing.T) {
	a := New(nil)
	r := a.ToggleSign()
	assert.Equal(t, "", r.Display)

	appendAll(t, a, "0")
	a.ToggleSign()
	assert.Equal(t, "0", a.Text())

	a.Clear()
	appendAll(t, a, "1", "2", "+", "3")
	r = a.ToggleSign()
	assert.Equal(t, "-12+3", r.Display)
	r = a.ToggleSign()
	assert.Equal(t, "12+3", r.Display)
}

func TestToggleSign_Involution(t *testing.T) {
	for _, text := range []string{"5", "-5", "0.5", "1+2", "-3*4", "00"} {
		a := New(nil)
		a.state.Text = text
		a.ToggleSign()
		a.ToggleSign()
		assert.Equal(t, text, a.Text())
	}
}

func TestUnaryOperations(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		op    func(a *Accumulator) Result
		want  string
	}{
		{"percent", []string{"5", "0"}, (*Accumulator).Percent, "0.5"},
		{"percent prefix", []string{"2", "0", "+", "1"}, (*Accumulator).Percent, "0.2"},
		{"sqrt", []string{"9"}, (*Accumulator).SquareRoot, "3"},
		{"sqrt irrational", []string{"2"}, (*Accumulator).SquareRoot, "1.4142135623730951"},
		{"square", []string{"1", "2"}, (*Accumulator).Square, "144"},
		{"square negative", []string{"-", "3"}, (*Accumulator).Square, "9"},
		{"reciprocal", []string{"5"}, (*Accumulator).Reciprocal, "0.2"},
		{"reciprocal negative", []string{"-", "4"}, (*Accumulator).Reciprocal, "-0.25"},
		{"reciprocal small", []string{"8", "0", "0", "0", "0", "0", "0", "0"}, (*Accumulator).Reciprocal, "1.25e-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(nil)
			appendAll(t, a, tt.input...)
			r := tt.op(a)
			require.NoError(t, r.Err)
			assert.Equal(t, tt.want, r.Display)
			assert.Equal(t, tt.want, a.Text())
			assert.True(t, a.PendingReset())
		})
	}
}

func TestUnaryOperations_EmptyIsNoop(t *testing.T) {
	for name, op := range map[string]func(a *Accumulator) Result{
		"percent": (*Accumulator).Percent,
		"sqrt":    (*Accumulator).SquareRoot,
		"square":  (*Accumulator).Square,
	} {
		t.Run(name, func(t *testing.T) {
			a := New(nil)
			r := op(a)
			assert.NoError(t, r.Err)
			assert.Equal(t, State{}, a.State())
		})
	}
}

func TestUnaryOperations_NoopAfterErrorKeepsMarker(t *testing.T) {
	a := New(nil)
	a.Reciprocal()
	r := a.Square()
	assert.NoError(t, r.Err)
	assert.Equal(t, ErrorMarker, r.Display)
	assert.Equal(t, ErrorMarker, a.Display())
}

func TestReciprocal_EmptyIsDomainError(t *testing.T) {
	a := New(nil)
	r := a.Reciprocal()
	assert.ErrorIs(t, r.Err, ErrDomain)
	assert.True(t, r.Failed())
	assert.Equal(t, ErrorMarker, r.Display)
	assert.Equal(t, State{Text: "", ResetOnNextInput: true}, a.State())
}

func TestReciprocal_ZeroIsDomainError(t *testing.T) {
	for _, in := range [][]string{{"0"}, {"0", ".", "0"}, {"-", "0"}} {
		a := New(nil)
		appendAll(t, a, in...)
		r := a.Reciprocal()
		assert.ErrorIs(t, r.Err, ErrDomain, "input %v", in)
	}
}

func TestSquareRoot_NegativeIsDomainError(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "-", "4")
	r := a.SquareRoot()
	assert.ErrorIs(t, r.Err, ErrDomain)
	assert.Equal(t, ErrorMarker, r.Display)
	assert.Equal(t, "", a.Text())
	assert.True(t, a.PendingReset())
}

func TestUnaryOperations_NotANumber(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "+")
	r := a.Percent()
	assert.ErrorIs(t, r.Err, ErrComputation)
	assert.Equal(t, ErrorMarker, r.Display)
}

func TestSquare_OverflowIsComputationError(t *testing.T) {
	a := New(nil)
	a.state.Text = "1e200"
	r := a.Square()
	assert.ErrorIs(t, r.Err, ErrComputation)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"2", "+", "3"}, "5"},
		{[]string{"2", "+", "3", "*", "4"}, "14"},
		{[]string{"6", MultiplySign, "7"}, "42"},
		{[]string{"1", "0", "/", "4"}, "2.5"},
		{[]string{"0", ".", "1", "+", "0", ".", "2"}, "0.30000000000000004"},
		{[]string{"-", "0"}, "0"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, ""), func(t *testing.T) {
			a := New(nil)
			appendAll(t, a, tt.tokens...)
			r := a.Evaluate()
			require.NoError(t, r.Err)
			assert.Equal(t, tt.want, r.Display)
			assert.True(t, a.PendingReset())
		})
	}
}

func TestEvaluate_EmptyIsNoop(t *testing.T) {
	a := New(nil)
	r := a.Evaluate()
	assert.NoError(t, r.Err)
	assert.Equal(t, State{}, a.State())
}

func TestEvaluate_IdempotentOnNumeral(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "1", "+", "1")
	first := a.Evaluate()
	second := a.Evaluate()
	third := a.Evaluate()
	assert.Equal(t, "2", first.Display)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.True(t, a.PendingReset())
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "1", "/", "0")
	r := a.Evaluate()
	assert.ErrorIs(t, r.Err, ErrComputation)
	assert.False(t, errors.Is(r.Err, ErrDomain))
	assert.Equal(t, ErrorMarker, r.Display)
	assert.Equal(t, State{ResetOnNextInput: true}, a.State())

	r = a.Append("8")
	assert.Equal(t, "8", r.Display)
	assert.False(t, a.PendingReset())
}

func TestEvaluate_SyntaxError(t *testing.T) {
	a := New(nil)
	appendAll(t, a, "3", "+", "*")
	r := a.Evaluate()
	assert.ErrorIs(t, r.Err, ErrComputation)
	assert.True(t, r.Failed())
}

func TestEvaluate_InjectedEvaluator(t *testing.T) {
	var got string
	a := New(evaluator.Func(func(expr string) (float64, error) {
		got = expr
		return 1.5, nil
	}))
	appendAll(t, a, "2", MultiplySign, "3")
	r := a.Evaluate()
	require.NoError(t, r.Err)
	assert.Equal(t, "2*3", got)
	assert.Equal(t, "1.5", r.Display)
}

func TestEvaluate_EvaluatorFailure(t *testing.T) {
	a := New(evaluator.Func(func(string) (float64, error) {
		return 0, errors.New("boom")
	}))
	appendAll(t, a, "1")
	r := a.Evaluate()
	assert.ErrorIs(t, r.Err, ErrComputation)
	assert.Contains(t, r.Err.Error(), "boom")
}
