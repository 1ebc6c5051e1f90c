// Package calc implements the expression-entry state machine behind the keypad.
//
// An Accumulator owns the typed expression text and the reset-on-next-input
// flag. Every operation runs to completion and reports a Result; failures are
// recovered inside the operation and never escape as panics or bare errors.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"keycalc/internal/evaluator"
	"keycalc/internal/logging"
)

// ErrorMarker is displayed after any failed operation.
const ErrorMarker = "Error"

// MultiplySign is the visual multiplication symbol; Evaluate maps it to '*'.
const MultiplySign = "×"

var (
	// ErrDomain marks an input outside an operation's domain
	// (square root of a negative number, reciprocal of zero or nothing).
	ErrDomain = errors.New("domain error")

	// ErrComputation marks an evaluator failure or a non-finite result.
	ErrComputation = errors.New("computation error")

	// ErrInvalidToken is returned by Append for anything that is not a digit,
	// '.', or an operator symbol. State is left untouched.
	ErrInvalidToken = errors.New("invalid token")
)

// State is the complete accumulator state.
type State struct {
	Text             string
	ResetOnNextInput bool
}

// Result is the outcome of one accumulator operation.
type Result struct {
	Display string
	Err     error
}

// Failed reports whether the operation ended in error recovery.
func (r Result) Failed() bool {
	return errors.Is(r.Err, ErrDomain) || errors.Is(r.Err, ErrComputation)
}

// Accumulator is the input/display state machine. It is not safe for
// concurrent use; a single UI event loop is expected to drive it.
type Accumulator struct {
	state State
	eval  evaluator.Evaluator

	// display is what the last operation asked the presentation layer to show.
	// It differs from state.Text only after error recovery.
	display string
}

// New returns an empty accumulator. A nil evaluator selects evaluator.New().
func New(ev evaluator.Evaluator) *Accumulator {
	if ev == nil {
		ev = evaluator.New()
	}
	return &Accumulator{eval: ev}
}

// State returns a copy of the current state.
func (a *Accumulator) State() State {
	return a.state
}

// Text returns the raw expression text.
func (a *Accumulator) Text() string {
	return a.state.Text
}

// PendingReset reports whether the next append starts a fresh expression.
func (a *Accumulator) PendingReset() bool {
	return a.state.ResetOnNextInput
}

// Display returns the string currently shown.
func (a *Accumulator) Display() string {
	return a.display
}

// IsToken reports whether token may be passed to Append.
func IsToken(token string) bool {
	if token == MultiplySign {
		return true
	}
	if len(token) != 1 {
		return false
	}
	c := token[0]
	return (c >= '0' && c <= '9') || strings.IndexByte(".+-*/", c) >= 0
}

// Append adds a digit, '.', or operator symbol to the expression. Grammar is
// not checked here; "1..2" or "3+*4" accumulate and fail at Evaluate.
func (a *Accumulator) Append(token string) Result {
	if !IsToken(token) {
		return Result{Display: a.display, Err: fmt.Errorf("%w: %q", ErrInvalidToken, token)}
	}
	if a.state.ResetOnNextInput {
		a.state.Text = ""
		a.state.ResetOnNextInput = false
	}
	a.state.Text += token
	return a.show(a.state.Text)
}

// Clear empties the expression and leaves PendingReset mode.
func (a *Accumulator) Clear() Result {
	a.state = State{}
	return a.show("")
}

// DeleteLast removes the final character. Empty text is a no-op.
func (a *Accumulator) DeleteLast() Result {
	if a.state.Text == "" {
		return a.show("")
	}
	_, size := utf8.DecodeLastRuneInString(a.state.Text)
	a.state.Text = a.state.Text[:len(a.state.Text)-size]
	return a.show(a.state.Text)
}

// ToggleSign prepends or strips a leading '-'. Empty text and "0" are left alone.
func (a *Accumulator) ToggleSign() Result {
	text := a.state.Text
	if text == "" || text == "0" {
		return Result{Display: a.display}
	}
	if strings.HasPrefix(text, "-") {
		a.state.Text = text[1:]
	} else {
		a.state.Text = "-" + text
	}
	return a.show(a.state.Text)
}

// Percent divides the current number by 100.
func (a *Accumulator) Percent() Result {
	return a.unary("percent", func(v float64) (float64, error) {
		return v / 100, nil
	})
}

// SquareRoot replaces the current number with its square root.
func (a *Accumulator) SquareRoot() Result {
	return a.unary("sqrt", func(v float64) (float64, error) {
		if v < 0 {
			return 0, fmt.Errorf("%w: square root of negative number %s", ErrDomain, FormatNumber(v))
		}
		return math.Sqrt(v), nil
	})
}

// Square replaces the current number with its square.
func (a *Accumulator) Square() Result {
	return a.unary("square", func(v float64) (float64, error) {
		return v * v, nil
	})
}

// Reciprocal replaces the current number with 1/x. Unlike the other unary
// operations, empty input is an error rather than a no-op.
func (a *Accumulator) Reciprocal() Result {
	if a.state.Text == "" {
		return a.fail("reciprocal", fmt.Errorf("%w: reciprocal of empty input", ErrDomain))
	}
	return a.unary("reciprocal", func(v float64) (float64, error) {
		if v == 0 {
			return 0, fmt.Errorf("%w: reciprocal of zero", ErrDomain)
		}
		return 1 / v, nil
	})
}

// Evaluate hands the expression to the evaluator and shows the result.
func (a *Accumulator) Evaluate() Result {
	if a.state.Text == "" {
		return Result{Display: a.display}
	}

	expr := strings.ReplaceAll(a.state.Text, MultiplySign, "*")
	v, err := a.eval.Evaluate(expr)
	if err != nil {
		return a.fail("evaluate", fmt.Errorf("%w: %v", ErrComputation, err))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return a.fail("evaluate", fmt.Errorf("%w: %q is not a finite number", ErrComputation, expr))
	}
	return a.succeed("evaluate", v)
}

func (a *Accumulator) unary(op string, fn func(float64) (float64, error)) Result {
	if a.state.Text == "" {
		return Result{Display: a.display}
	}

	v, ok := ParseLeadingFloat(a.state.Text)
	if !ok {
		return a.fail(op, fmt.Errorf("%w: %q is not a number", ErrComputation, a.state.Text))
	}
	out, err := fn(v)
	if err != nil {
		return a.fail(op, err)
	}
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return a.fail(op, fmt.Errorf("%w: %s result is not finite", ErrComputation, op))
	}
	return a.succeed(op, out)
}

func (a *Accumulator) succeed(op string, v float64) Result {
	text := FormatNumber(v)
	logging.AccumulatorDebug("%s: %q -> %s", op, a.state.Text, text)
	a.state.Text = text
	a.state.ResetOnNextInput = true
	return a.show(text)
}

// fail is the shared recovery transition for both error kinds.
func (a *Accumulator) fail(op string, err error) Result {
	logging.Get(logging.CategoryAccumulator).Warn("%s failed on %q: %v", op, a.state.Text, err)
	a.state.Text = ""
	a.state.ResetOnNextInput = true
	a.display = ErrorMarker
	return Result{Display: ErrorMarker, Err: err}
}

func (a *Accumulator) show(s string) Result {
	a.display = s
	return Result{Display: s}
}
