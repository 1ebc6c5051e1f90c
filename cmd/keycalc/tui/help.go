package tui

import (
	"fmt"
	"strings"

	"keycalc/internal/logging"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown lists every binding as a markdown table.
func (m Model) helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Keys\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\nClick any key on the keypad with the mouse. ")
	sb.WriteString("Errors clear on the next key press.\n")
	return sb.String()
}

// refreshHelp re-renders the full help page when it is visible. Called on
// toggle, resize and theme change so View stays cheap.
func (m *Model) refreshHelp() {
	if !m.showHelp {
		m.helpDoc = ""
		return
	}
	m.helpDoc = m.renderFullHelp()
}

func (m Model) renderFullHelp() string {
	w := keypadWidth()
	if m.width > w {
		w = m.width - 2*leftPad
	}

	style := "dark"
	if !m.styles.Theme.IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		logging.UIDebug("help renderer: %v", err)
		return m.helpMarkdown()
	}
	out, err := r.Render(m.helpMarkdown())
	if err != nil {
		logging.UIDebug("help render: %v", err)
		return m.helpMarkdown()
	}
	return out
}
