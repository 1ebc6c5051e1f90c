// Package ui provides the visual styling for the keycalc terminal calculator.
// Three palettes are available: dark, light and neon.
package ui

import (
	"os"
	"strconv"
	"strings"

	"keycalc/internal/config"
	"keycalc/internal/keymap"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors shared by every theme.
var (
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#8BC34A") // Lime Green
)

// Theme holds one color scheme.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color

	// Keypad key faces
	Number   lipgloss.Color
	Operator lipgloss.Color
	Equals   lipgloss.Color
	Clear    lipgloss.Color
	Advanced lipgloss.Color

	IsDark bool
}

// DarkTheme returns the dark palette.
func DarkTheme() Theme {
	return Theme{
		Name:       config.ThemeDark,
		Background: lipgloss.Color("#141d2b"), // hsl(220, 58%, 10%)
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8BC34A"),
		Accent:     lipgloss.Color("#4db6ac"), // Teal
		Muted:      lipgloss.Color("#6b7a90"),
		Border:     lipgloss.Color("#2a3850"),
		Card:       lipgloss.Color("#1a2536"),
		Number:     lipgloss.Color("#2a3850"),
		Operator:   lipgloss.Color("#ff8a65"),
		Equals:     lipgloss.Color("#8BC34A"),
		Clear:      lipgloss.Color("#e57373"),
		Advanced:   lipgloss.Color("#29434e"),
		IsDark:     true,
	}
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Name:       config.ThemeLight,
		Background: lipgloss.Color("#f4f5f6"),
		Foreground: lipgloss.Color("#101F38"), // Dark Blue
		Primary:    lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#2196F3"),
		Muted:      lipgloss.Color("#8a94a3"),
		Border:     lipgloss.Color("#dce0e5"),
		Card:       lipgloss.Color("#ffffff"),
		Number:     lipgloss.Color("#e1e4e8"),
		Operator:   lipgloss.Color("#ffd54f"),
		Equals:     lipgloss.Color("#8BC34A"),
		Clear:      lipgloss.Color("#ef9a9a"),
		Advanced:   lipgloss.Color("#b3d4fc"),
		IsDark:     false,
	}
}

// NeonTheme returns the neon palette.
func NeonTheme() Theme {
	return Theme{
		Name:       config.ThemeNeon,
		Background: lipgloss.Color("#0a0014"),
		Foreground: lipgloss.Color("#f8f8ff"),
		Primary:    lipgloss.Color("#ff00e6"), // Magenta
		Accent:     lipgloss.Color("#00fff0"), // Cyan
		Muted:      lipgloss.Color("#7a5c99"),
		Border:     lipgloss.Color("#ff00e6"),
		Card:       lipgloss.Color("#14002b"),
		Number:     lipgloss.Color("#24004d"),
		Operator:   lipgloss.Color("#00fff0"),
		Equals:     lipgloss.Color("#39ff14"), // Neon green
		Clear:      lipgloss.Color("#ff3131"),
		Advanced:   lipgloss.Color("#7d00ff"),
		IsDark:     true,
	}
}

// ThemeByName returns the named theme, or the dark theme for unknown names.
func ThemeByName(name string) Theme {
	switch name {
	case config.ThemeLight:
		return LightTheme()
	case config.ThemeNeon:
		return NeonTheme()
	default:
		return DarkTheme()
	}
}

// NextTheme returns the theme after name in cycle order.
func NextTheme(name string) string {
	for i, t := range config.ValidThemes {
		if t == name {
			return config.ValidThemes[(i+1)%len(config.ValidThemes)]
		}
	}
	return config.ValidThemes[0]
}

// DetectTheme picks light or dark from the terminal's COLORFGBG hint.
// Used only when nothing is configured.
func DetectTheme() Theme {
	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 7 and 9-15 are the light ANSI backgrounds
			if bgIdx == 7 || bgIdx >= 9 {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// ButtonKind groups keypad keys by role for coloring.
type ButtonKind int

const (
	ButtonNumber ButtonKind = iota
	ButtonOperator
	ButtonEquals
	ButtonClear
	ButtonAdvanced
)

// KindOf classifies a resolved command.
func KindOf(c keymap.Command) ButtonKind {
	switch c.Action {
	case keymap.ActionAppend:
		if len(c.Token) == 1 && (c.Token[0] == '.' || (c.Token[0] >= '0' && c.Token[0] <= '9')) {
			return ButtonNumber
		}
		return ButtonOperator
	case keymap.ActionEvaluate:
		return ButtonEquals
	case keymap.ActionClear, keymap.ActionDeleteLast:
		return ButtonClear
	default:
		return ButtonAdvanced
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title lipgloss.Style
	Muted lipgloss.Style

	// Display panel states
	Display      lipgloss.Style
	DisplayFlash lipgloss.Style
	DisplayError lipgloss.Style
	Expression   lipgloss.Style
	Particle     lipgloss.Style

	// Keypad
	buttons       map[ButtonKind]lipgloss.Style
	ButtonPressed lipgloss.Style
}

// ButtonWidth is the rendered width of one keypad key, borders excluded.
const ButtonWidth = 5

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	display := lipgloss.NewStyle().
		Background(theme.Card).
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Align(lipgloss.Right).
		Bold(true)

	button := func(bg lipgloss.Color) lipgloss.Style {
		fg := theme.Foreground
		if !theme.IsDark && bg != theme.Number {
			fg = theme.Primary
		}
		return lipgloss.NewStyle().
			Background(bg).
			Foreground(fg).
			Width(ButtonWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border)
	}

	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Display:      display,
		DisplayFlash: display.BorderForeground(theme.Accent),
		DisplayError: display.BorderForeground(Destructive).Foreground(Destructive),

		Expression: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Align(lipgloss.Right),

		Particle: lipgloss.NewStyle().
			Foreground(theme.Accent),

		buttons: map[ButtonKind]lipgloss.Style{
			ButtonNumber:   button(theme.Number),
			ButtonOperator: button(theme.Operator),
			ButtonEquals:   button(theme.Equals),
			ButtonClear:    button(theme.Clear),
			ButtonAdvanced: button(theme.Advanced),
		},
		ButtonPressed: button(theme.Accent).
			BorderForeground(theme.Accent).
			Bold(true),
	}
}

// Button returns the key face style for kind.
func (s Styles) Button(kind ButtonKind) lipgloss.Style {
	if st, ok := s.buttons[kind]; ok {
		return st
	}
	return s.buttons[ButtonNumber]
}
