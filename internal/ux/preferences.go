package ux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"keycalc/internal/config"
	"keycalc/internal/logging"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "1.0"

// UserPreferences is the persisted preference schema.
type UserPreferences struct {
	// Version is the schema version for migration detection
	Version string `json:"version"`

	// Theme is one of config.ValidThemes
	Theme string `json:"theme"`

	// SoundEnabled controls button tones
	SoundEnabled bool `json:"sound_enabled"`

	// UpdatedAt records the last change (RFC3339)
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PreferencesManager handles loading/saving preferences.
type PreferencesManager struct {
	mu          sync.RWMutex
	path        string
	defaults    UserPreferences
	preferences *UserPreferences

	// dirty is set by the setters and cleared by Save.
	dirty bool
	// written is the file content as of our last Load or Save.
	written []byte
}

// NewPreferencesManager creates a preferences manager for the given workspace
// using the built-in defaults (dark theme, sound on).
func NewPreferencesManager(workspace string) *PreferencesManager {
	return NewPreferencesManagerWithDefaults(workspace, *DefaultUserPreferences())
}

// NewPreferencesManagerWithDefaults uses defaults for values that were never saved.
// An invalid default theme is replaced by the built-in one.
func NewPreferencesManagerWithDefaults(workspace string, defaults UserPreferences) *PreferencesManager {
	if !config.IsValidTheme(defaults.Theme) {
		defaults.Theme = config.ThemeDark
	}
	defaults.Version = PreferencesVersion
	return &PreferencesManager{
		path:     filepath.Join(workspace, config.DirName, "preferences.json"),
		defaults: defaults,
	}
}

// Path returns the preferences file location.
func (pm *PreferencesManager) Path() string {
	return pm.path
}

// Load reads preferences from disk, using defaults if the file does not exist.
// Fields missing from the file keep their default, and an unrecognized theme
// is ignored. Unsaved changes are discarded.
func (pm *PreferencesManager) Load() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			prefs := pm.defaults
			pm.preferences = &prefs
			pm.dirty = false
			pm.written = nil
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	return pm.applyLocked(data)
}

// Reload picks up an edit made by another process. It reports false when the
// file still holds what this manager last wrote, or when unsaved changes are
// pending; those win and are written by the next Save.
func (pm *PreferencesManager) Reload() (bool, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read preferences: %w", err)
	}
	if pm.written != nil && bytes.Equal(data, pm.written) {
		return false, nil
	}
	if pm.dirty {
		logging.Prefs("reload skipped: unsaved changes pending")
		return false, nil
	}
	before := pm.getLocked()
	if err := pm.applyLocked(data); err != nil {
		return false, err
	}
	return pm.getLocked() != before, nil
}

func (pm *PreferencesManager) applyLocked(data []byte) error {
	prefs := pm.defaults
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	if !config.IsValidTheme(prefs.Theme) {
		logging.PrefsWarn("ignoring unknown saved theme %q", prefs.Theme)
		prefs.Theme = pm.defaults.Theme
	}

	pm.preferences = &prefs
	pm.dirty = false
	pm.written = data
	return nil
}

// Save writes preferences to disk.
func (pm *PreferencesManager) Save() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		prefs := pm.defaults
		pm.preferences = &prefs
	}

	dir := filepath.Dir(pm.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(pm.preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(pm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	pm.dirty = false
	pm.written = data

	logging.Prefs("saved preferences: theme=%s sound=%v", pm.preferences.Theme, pm.preferences.SoundEnabled)
	return nil
}

// Get returns a copy of the current preferences (thread-safe).
func (pm *PreferencesManager) Get() UserPreferences {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.getLocked()
}

func (pm *PreferencesManager) getLocked() UserPreferences {
	if pm.preferences == nil {
		return pm.defaults
	}
	return *pm.preferences
}

// Dirty reports whether there are changes Save has not written yet.
func (pm *PreferencesManager) Dirty() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.dirty
}

// Theme returns the current theme name.
func (pm *PreferencesManager) Theme() string {
	return pm.Get().Theme
}

// SoundEnabled returns the current sound flag.
func (pm *PreferencesManager) SoundEnabled() bool {
	return pm.Get().SoundEnabled
}

// SetTheme updates the theme. Unknown names are rejected.
func (pm *PreferencesManager) SetTheme(theme string) error {
	if !config.IsValidTheme(theme) {
		return fmt.Errorf("unknown theme: %s (valid: %v)", theme, config.ValidThemes)
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.ensureLocked()
	pm.preferences.Theme = theme
	pm.dirty = true
	pm.preferences.UpdatedAt = time.Now().Format(time.RFC3339)
	return nil
}

// SetSoundEnabled updates the sound flag.
func (pm *PreferencesManager) SetSoundEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.ensureLocked()
	pm.preferences.SoundEnabled = enabled
	pm.dirty = true
	pm.preferences.UpdatedAt = time.Now().Format(time.RFC3339)
}

func (pm *PreferencesManager) ensureLocked() {
	if pm.preferences == nil {
		prefs := pm.defaults
		pm.preferences = &prefs
	}
}

// DefaultUserPreferences returns sensible defaults for new users.
func DefaultUserPreferences() *UserPreferences {
	return &UserPreferences{
		Version:      PreferencesVersion,
		Theme:        config.ThemeDark,
		SoundEnabled: true,
	}
}
