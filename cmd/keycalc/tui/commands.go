package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	shakeInterval = 50 * time.Millisecond
	pressDuration = 120 * time.Millisecond
)

func flashEnd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashEndMsg{seq: seq}
	})
}

func shakeTick(seq int) tea.Cmd {
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg {
		return shakeMsg{seq: seq}
	})
}

func particleTick(seq int, frame time.Duration) tea.Cmd {
	return tea.Tick(frame, func(time.Time) tea.Msg {
		return particleTickMsg{seq: seq}
	})
}

func pressEnd(seq int) tea.Cmd {
	return tea.Tick(pressDuration, func(time.Time) tea.Msg {
		return pressEndMsg{seq: seq}
	})
}

// waitForPrefs blocks until the watcher reports an on-disk change.
func (m Model) waitForPrefs() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	updates := m.watcher.Updates()
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return prefsChangedMsg(p)
	}
}
