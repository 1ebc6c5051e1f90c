// Package keymap is the static dispatch table between raw input (key names and
// keypad buttons) and accumulator operations.
package keymap

import (
	"keycalc/internal/calc"

	"github.com/charmbracelet/bubbles/key"
)

// Action identifies what an input does.
type Action int

const (
	ActionNone Action = iota
	ActionAppend
	ActionEvaluate
	ActionClear
	ActionDeleteLast
	ActionPercent
	ActionSquareRoot
	ActionSquare
	ActionReciprocal
	ActionToggleSign

	// Presentation-only actions; Dispatch does not handle these.
	ActionCycleTheme
	ActionToggleSound
	ActionToggleHelp
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionAppend:      "append",
	ActionEvaluate:    "evaluate",
	ActionClear:       "clear",
	ActionDeleteLast:  "delete_last",
	ActionPercent:     "percent",
	ActionSquareRoot:  "square_root",
	ActionSquare:      "square",
	ActionReciprocal:  "reciprocal",
	ActionToggleSign:  "toggle_sign",
	ActionCycleTheme:  "cycle_theme",
	ActionToggleSound: "toggle_sound",
	ActionToggleHelp:  "toggle_help",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsAccumulator reports whether the action mutates the accumulator.
func (a Action) IsAccumulator() bool {
	return a >= ActionAppend && a <= ActionToggleSign
}

// Command is a resolved input: an action plus the token for ActionAppend.
type Command struct {
	Action Action
	Token  string
}

var table = buildTable()

func buildTable() map[string]Command {
	t := make(map[string]Command)
	for _, d := range "0123456789" {
		t[string(d)] = Command{Action: ActionAppend, Token: string(d)}
	}
	for _, tok := range []string{".", "+", "-", "*", "/"} {
		t[tok] = Command{Action: ActionAppend, Token: tok}
	}
	// Visual operator glyphs used on the keypad.
	t[calc.MultiplySign] = Command{Action: ActionAppend, Token: calc.MultiplySign}
	t["÷"] = Command{Action: ActionAppend, Token: "/"}
	t["−"] = Command{Action: ActionAppend, Token: "-"}

	set := func(a Action, keys ...string) {
		for _, k := range keys {
			t[k] = Command{Action: a}
		}
	}
	set(ActionEvaluate, "enter", "=")
	set(ActionClear, "esc", "c", "C")
	set(ActionDeleteLast, "backspace")
	set(ActionPercent, "%")
	set(ActionSquareRoot, "s", "S")
	set(ActionSquare, "q", "Q")
	set(ActionReciprocal, "r", "R")
	set(ActionToggleSign, "n", "N")
	set(ActionCycleTheme, "t", "T")
	set(ActionToggleSound, "m", "M")
	set(ActionToggleHelp, "?")
	set(ActionQuit, "ctrl+c")
	return t
}

// Lookup resolves a key name as reported by bubbletea's KeyMsg.String().
func Lookup(k string) (Command, bool) {
	c, ok := table[k]
	return c, ok
}

// Dispatch runs an accumulator command. It returns false, with a zero Result,
// for presentation-only actions.
func Dispatch(acc *calc.Accumulator, c Command) (calc.Result, bool) {
	switch c.Action {
	case ActionAppend:
		return acc.Append(c.Token), true
	case ActionEvaluate:
		return acc.Evaluate(), true
	case ActionClear:
		return acc.Clear(), true
	case ActionDeleteLast:
		return acc.DeleteLast(), true
	case ActionPercent:
		return acc.Percent(), true
	case ActionSquareRoot:
		return acc.SquareRoot(), true
	case ActionSquare:
		return acc.Square(), true
	case ActionReciprocal:
		return acc.Reciprocal(), true
	case ActionToggleSign:
		return acc.ToggleSign(), true
	default:
		return calc.Result{}, false
	}
}

// KeyMap exposes the table as bubbles key bindings for help rendering.
type KeyMap struct {
	Digits     key.Binding
	Operators  key.Binding
	Evaluate   key.Binding
	Clear      key.Binding
	Backspace  key.Binding
	Percent    key.Binding
	SquareRoot key.Binding
	Square     key.Binding
	Reciprocal key.Binding
	Negate     key.Binding
	Theme      key.Binding
	Sound      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns bindings matching Lookup.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "number"),
		),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "*", "/"),
			key.WithHelp("+ - * /", "operator"),
		),
		Evaluate:   key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter/=", "evaluate")),
		Clear:      key.NewBinding(key.WithKeys("esc", "c", "C"), key.WithHelp("esc/c", "clear")),
		Backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Percent:    key.NewBinding(key.WithKeys("%"), key.WithHelp("%", "percent")),
		SquareRoot: key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "√x")),
		Square:     key.NewBinding(key.WithKeys("q", "Q"), key.WithHelp("q", "x²")),
		Reciprocal: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "1/x")),
		Negate:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "±")),
		Theme:      key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "theme")),
		Sound:      key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "sound")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.Theme, k.Sound, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Evaluate, k.Clear, k.Backspace},
		{k.Percent, k.SquareRoot, k.Square, k.Reciprocal, k.Negate},
		{k.Theme, k.Sound, k.Help, k.Quit},
	}
}
