// Package tui is the interactive bubbletea front end: a display panel over a
// clickable keypad, with themes, tones and a particle burst on results.
package tui

import (
	"math/rand/v2"
	"time"

	"keycalc/cmd/keycalc/ui"
	"keycalc/internal/calc"
	"keycalc/internal/config"
	"keycalc/internal/evaluator"
	"keycalc/internal/keymap"
	"keycalc/internal/logging"
	"keycalc/internal/particles"
	"keycalc/internal/sound"
	"keycalc/internal/usage"
	"keycalc/internal/ux"

	"github.com/charmbracelet/bubbles/help"
	"github.com/google/uuid"
)

// Options wires a Model to its collaborators. Only Prefs is required.
type Options struct {
	UI        config.UIConfig
	Prefs     *ux.PreferencesManager
	Watcher   *ux.Watcher
	Mixer     *sound.Mixer
	Evaluator evaluator.Evaluator
	Rand      *rand.Rand
	SaveDelay time.Duration

	// Mute starts the session silent without touching the saved preference.
	Mute bool
}

// Model is one calculator session.
type Model struct {
	id  string
	acc *calc.Accumulator

	keys     keymap.KeyMap
	help     help.Model
	showHelp bool
	helpDoc  string

	theme   string
	styles  ui.Styles
	soundOn bool
	mute    bool

	prefs   *ux.PreferencesManager
	watcher *ux.Watcher
	mixer   *sound.Mixer
	saver   *ui.Debouncer
	usage   *usage.Tracker
	log     *logging.Logger

	cfg    config.UIConfig
	rng    *rand.Rand
	width  int
	height int

	// lastExpr is the expression that produced the current result.
	lastExpr string

	flashing   bool
	flashSeq   int
	shakeFrame int
	shakeSeq   int
	burst      *particles.Burst
	burstSeq   int
	pressed    *cell
	pressSeq   int

	quitting bool
}

type cell struct{ row, col int }

// New builds a session from opts.
func New(opts Options) Model {
	prefs := opts.Prefs
	if prefs == nil {
		prefs = ux.NewPreferencesManager(".")
	}
	mixer := opts.Mixer
	if mixer == nil {
		mixer = sound.NewMixer(sound.Nop{}, config.SoundConfig{})
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	delay := opts.SaveDelay
	if delay <= 0 {
		delay = ui.DefaultSaveDelay
	}
	cfg := opts.UI
	if cfg.NarrowWidth == 0 {
		cfg = *config.DefaultUIConfig()
	}

	p := prefs.Get()
	soundOn := p.SoundEnabled && !opts.Mute
	mixer.SetEnabled(soundOn)

	id := uuid.New().String()
	m := Model{
		id:      id,
		acc:     calc.New(opts.Evaluator),
		keys:    keymap.DefaultKeyMap(),
		help:    help.New(),
		theme:   p.Theme,
		styles:  ui.NewStyles(ui.ThemeByName(p.Theme)),
		soundOn: soundOn,
		mute:    opts.Mute,
		prefs:   prefs,
		watcher: opts.Watcher,
		mixer:   mixer,
		saver:   ui.NewDebouncer(delay),
		usage:   usage.NewTracker(id),
		log:     logging.Get(logging.CategorySession).With("session", id),
		cfg:     cfg,
		rng:     rng,
	}
	m.applyHelpStyles()
	m.log.Info("session started: theme=%s sound=%v mute=%v", p.Theme, soundOn, opts.Mute)
	return m
}

// SessionID returns the session's unique identifier.
func (m Model) SessionID() string { return m.id }

// Accumulator exposes the underlying state machine.
func (m Model) Accumulator() *calc.Accumulator { return m.acc }

// Usage returns the session's operation counters.
func (m Model) Usage() usage.Stats { return m.usage.Stats() }

// Theme returns the active theme name.
func (m Model) Theme() string { return m.theme }

// SoundEnabled reports whether tones are on.
func (m Model) SoundEnabled() bool { return m.soundOn }

func (m *Model) setTheme(name string) {
	m.theme = name
	m.styles = ui.NewStyles(ui.ThemeByName(name))
	m.applyHelpStyles()
	m.refreshHelp()
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = m.styles.Title
	m.help.Styles.ShortDesc = m.styles.Muted
	m.help.Styles.ShortSeparator = m.styles.Muted
	m.help.Styles.FullKey = m.styles.Title
	m.help.Styles.FullDesc = m.styles.Muted
	m.help.Styles.FullSeparator = m.styles.Muted
}

// Shutdown flushes pending saves and releases audio and file watchers.
func (m Model) Shutdown() {
	m.saver.Flush()
	if m.watcher != nil {
		m.watcher.Stop()
	}
	if err := m.mixer.Close(); err != nil {
		logging.SoundWarn("closing mixer: %v", err)
	}
	m.log.Info("session ended: %s", m.usage.Stats().Summary())
}
