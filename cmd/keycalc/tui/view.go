package tui

import (
	"fmt"
	"strings"

	"keycalc/cmd/keycalc/ui"
	"keycalc/internal/keymap"

	"github.com/charmbracelet/lipgloss"
)

// Screen geometry, top to bottom. Mouse hit-testing depends on these.
const (
	leftPad     = 1 // App style horizontal padding
	headerRows  = 1
	exprRows    = 1
	displayRows = 3 // bordered single line
	sparkRows   = 3
	keypadTop   = headerRows + exprRows + displayRows + sparkRows
	buttonRows  = 3
	buttonCols  = ui.ButtonWidth + 2
)

func keypadWidth() int {
	return keymap.Columns() * buttonCols
}

// keypadCell maps a terminal coordinate to a keypad row and column.
func keypadCell(x, y int) (row, col int, ok bool) {
	x -= leftPad
	y -= keypadTop
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/buttonRows, x/buttonCols
	if row >= len(keymap.Keypad) || col >= keymap.Columns() {
		return 0, 0, false
	}
	return row, col, true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sections := []string{
		m.renderHeader(),
		m.renderExpression(),
		m.renderDisplay(),
		m.renderSparks(),
	}
	if m.showHelp {
		sections = append(sections, m.helpDoc)
	} else {
		sections = append(sections, m.renderKeypad())
	}
	sections = append(sections, m.styles.Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	w := keypadWidth()
	title := m.styles.Title.Render("keycalc")
	sound := "♪ off"
	if m.soundOn {
		sound = "♪ on"
	}
	status := m.styles.Muted.Render(fmt.Sprintf("◐ %s  %s", m.theme, sound))
	gap := w - lipgloss.Width(title) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Render(title + strings.Repeat(" ", gap) + status)
}

func (m Model) renderExpression() string {
	w := keypadWidth()
	return m.styles.Expression.Width(w).Render(fitRight(m.lastExpr, w))
}

func (m Model) renderDisplay() string {
	w := keypadWidth()
	style := m.styles.Display
	switch {
	case m.errored() || m.shakeFrame > 0:
		style = m.styles.DisplayError
	case m.flashing:
		style = m.styles.DisplayFlash
	}
	// Border (2) and padding (2) come out of the content width.
	text := fitRight(m.Display(), w-4)
	box := style.Width(w - 2).Render(text)
	if m.shakeFrame > 0 && m.shakeFrame%2 == 1 {
		box = lipgloss.NewStyle().MarginLeft(1).Render(box)
	}
	return box
}

func (m Model) renderSparks() string {
	w := keypadWidth()
	if m.burst == nil {
		return strings.Repeat(" ", w) + strings.Repeat("\n"+strings.Repeat(" ", w), sparkRows-1)
	}
	return m.styles.Particle.Render(m.burst.Render(w, sparkRows))
}

func (m Model) renderKeypad() string {
	rows := make([]string, 0, len(keymap.Keypad))
	for r, row := range keymap.Keypad {
		keys := make([]string, 0, len(row))
		for c, b := range row {
			style := m.styles.Button(ui.KindOf(b.Command()))
			if m.pressed != nil && m.pressed.row == r && m.pressed.col == c {
				style = m.styles.ButtonPressed
			}
			keys = append(keys, style.Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// fitRight keeps the rightmost w cells of s so the newest input stays visible.
func fitRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return "…" + string(r[len(r)-w+1:])
}
