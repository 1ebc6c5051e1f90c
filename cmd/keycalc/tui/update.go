package tui

import (
	"keycalc/cmd/keycalc/ui"
	"keycalc/internal/calc"
	"keycalc/internal/keymap"
	"keycalc/internal/logging"
	"keycalc/internal/particles"
	"keycalc/internal/sound"
	"keycalc/internal/ux"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

type (
	flashEndMsg     struct{ seq int }
	shakeMsg        struct{ seq int }
	particleTickMsg struct{ seq int }
	pressEndMsg     struct{ seq int }
	prefsChangedMsg ux.UserPreferences
)

// Init starts the preference watcher listener.
func (m Model) Init() tea.Cmd {
	return m.waitForPrefs()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.refreshHelp()
		return m, nil

	case tea.KeyMsg:
		c, ok := keymap.Lookup(msg.String())
		if !ok {
			return m, nil
		}
		return m.apply(c)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case flashEndMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil

	case shakeMsg:
		if msg.seq != m.shakeSeq || m.shakeFrame == 0 {
			return m, nil
		}
		m.shakeFrame--
		if m.shakeFrame == 0 {
			return m, nil
		}
		return m, shakeTick(m.shakeSeq)

	case particleTickMsg:
		if msg.seq != m.burstSeq || m.burst == nil {
			return m, nil
		}
		m.burst.Step()
		if m.burst.Alive() == 0 {
			m.burst = nil
			return m, nil
		}
		return m, particleTick(m.burstSeq, m.burst.Frame())

	case pressEndMsg:
		if msg.seq == m.pressSeq {
			m.pressed = nil
		}
		return m, nil

	case prefsChangedMsg:
		p := ux.UserPreferences(msg)
		if p.Theme != m.theme {
			logging.UIDebug("theme changed on disk: %s -> %s", m.theme, p.Theme)
			m.setTheme(p.Theme)
		}
		m.soundOn = p.SoundEnabled && !m.mute
		m.mixer.SetEnabled(m.soundOn)
		return m, m.waitForPrefs()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.showHelp {
		return m, nil
	}
	row, col, ok := keypadCell(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	b, ok := keymap.ButtonAt(row, col)
	if !ok {
		return m, nil
	}
	logging.UIDebug("click %q at %d,%d", b.Label, row, col)

	m.pressSeq++
	m.pressed = &cell{row: row, col: col}
	next, cmd := m.apply(b.Command())
	return next, tea.Batch(cmd, pressEnd(m.pressSeq))
}

// apply runs one resolved input against the session.
func (m Model) apply(c keymap.Command) (Model, tea.Cmd) {
	switch c.Action {
	case keymap.ActionQuit:
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit

	case keymap.ActionToggleHelp:
		m.showHelp = !m.showHelp
		m.refreshHelp()
		return m, nil

	case keymap.ActionCycleTheme:
		next := ui.NextTheme(m.theme)
		m.setTheme(next)
		if err := m.prefs.SetTheme(next); err != nil {
			logging.PrefsWarn("set theme: %v", err)
		}
		m.scheduleSave()
		m.playTone(c, false)
		return m, nil

	case keymap.ActionToggleSound:
		m.soundOn = !m.soundOn
		m.mute = false
		m.mixer.SetEnabled(m.soundOn)
		m.prefs.SetSoundEnabled(m.soundOn)
		m.scheduleSave()
		return m, nil
	}

	before := m.acc.Text()
	r, handled := keymap.Dispatch(m.acc, c)
	if !handled {
		return m, nil
	}
	logging.SessionDebug("%s %q: %q -> %q", c.Action, c.Token, before, r.Display)
	m.usage.Track(c.Action.String(), r)
	m.playTone(c, r.Failed())

	if r.Failed() {
		m.lastExpr = ""
		return m, m.startShake()
	}
	switch c.Action {
	case keymap.ActionEvaluate:
		if r.Err == nil && before != "" {
			m.lastExpr = before
			return m, tea.Batch(m.startFlash(), m.startBurst())
		}
	case keymap.ActionPercent, keymap.ActionSquareRoot, keymap.ActionSquare, keymap.ActionReciprocal:
		m.lastExpr = ""
		if before != "" {
			return m, m.startFlash()
		}
	case keymap.ActionClear:
		m.lastExpr = ""
	}
	return m, nil
}

func (m Model) playTone(c keymap.Command, failed bool) {
	if t, ok := sound.ForCommand(c, failed); ok {
		m.mixer.Trigger(t)
	}
}

func (m Model) scheduleSave() {
	prefs := m.prefs
	m.saver.Debounce(func() {
		if err := prefs.Save(); err != nil {
			logging.PrefsWarn("save preferences: %v", err)
		}
	})
}

func (m *Model) startFlash() tea.Cmd {
	m.flashSeq++
	m.flashing = true
	return flashEnd(m.flashSeq, m.cfg.FlashDuration())
}

func (m *Model) startShake() tea.Cmd {
	m.shakeSeq++
	m.shakeFrame = int(m.cfg.ShakeDuration() / shakeInterval)
	if m.shakeFrame == 0 {
		return nil
	}
	return shakeTick(m.shakeSeq)
}

func (m *Model) startBurst() tea.Cmd {
	if !m.cfg.Particles {
		return nil
	}
	w := keypadWidth()
	m.burstSeq++
	m.burst = particles.NewBurst(particles.Config{
		Width:       m.width,
		NarrowWidth: m.cfg.NarrowWidth,
	}, harmonica.Point{X: float64(w) / 2, Y: float64(sparkRows / 2)}, m.rng)
	return particleTick(m.burstSeq, m.burst.Frame())
}

// Display is what the display panel shows for the current state.
func (m Model) Display() string {
	d := m.acc.Display()
	if d == "" {
		return "0"
	}
	return d
}

// errored reports whether the display is showing the error marker.
func (m Model) errored() bool {
	return m.acc.Display() == calc.ErrorMarker && m.acc.PendingReset()
}
