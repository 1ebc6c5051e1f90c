package tui

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"keycalc/internal/config"
	"keycalc/internal/sound"
	"keycalc/internal/ux"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// recordingPlayer captures every tone it is asked to play.
type recordingPlayer struct {
	mu    sync.Mutex
	tones []sound.Tone
}

func (p *recordingPlayer) Play(_ context.Context, t sound.Tone) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tones = append(p.tones, t)
	return nil
}

func (p *recordingPlayer) Close() error { return nil }

func (p *recordingPlayer) played() []sound.Tone {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sound.Tone(nil), p.tones...)
}

type testEnv struct {
	model  Model
	prefs  *ux.PreferencesManager
	player *recordingPlayer
	dir    string
}

// NewTestModel builds a session backed by a temp workspace and a recording
// audio player.
func NewTestModel(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	pm := ux.NewPreferencesManager(dir)
	require.NoError(t, pm.Load())

	rec := &recordingPlayer{}
	mixer := sound.NewMixer(rec, config.SoundConfig{Enabled: true, Volume: 1, MaxVoices: 16})

	m := New(Options{
		UI:        *config.DefaultUIConfig(),
		Prefs:     pm,
		Mixer:     mixer,
		Rand:      rand.New(rand.NewPCG(1, 1)),
		SaveDelay: 10 * time.Millisecond,
	})
	t.Cleanup(m.Shutdown)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return testEnv{model: next.(Model), prefs: pm, player: rec, dir: dir}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys through Update and returns the final model and last cmd.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// buttonCenter returns the terminal coordinate of a keypad key's label.
func buttonCenter(row, col int) (x, y int) {
	return leftPad + col*buttonCols + buttonCols/2, keypadTop + row*buttonRows + 1
}
