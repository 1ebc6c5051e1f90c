package tui

import (
	"fmt"

	"keycalc/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts an interactive session and blocks until the user quits.
func Run(opts Options) error {
	model := New(opts)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	logging.Session("program exited: err=%v", err)
	if fm, ok := final.(Model); ok && !fm.quitting {
		fm.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
