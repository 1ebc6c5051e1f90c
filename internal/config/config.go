package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config, preferences and logs.
const DirName = ".keycalc"

// Theme names, in cycle order.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNeon  = "neon"
)

// ValidThemes lists all supported themes in cycle order.
var ValidThemes = []string{ThemeDark, ThemeLight, ThemeNeon}

// IsValidTheme reports whether name is a known theme.
func IsValidTheme(name string) bool {
	for _, t := range ValidThemes {
		if t == name {
			return true
		}
	}
	return false
}

// Config holds all keycalc configuration.
type Config struct {
	// UI presentation
	UI UIConfig `yaml:"ui"`

	// Button tone synthesis
	Sound SoundConfig `yaml:"sound"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI:      *DefaultUIConfig(),
		Sound:   *DefaultSoundConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file location for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := strings.ToLower(strings.TrimSpace(os.Getenv("KEYCALC_THEME"))); theme != "" {
		c.UI.DefaultTheme = theme
	}
	if v, ok := envBool("KEYCALC_SOUND"); ok {
		c.Sound.Enabled = v
	}
	if v, ok := envBool("KEYCALC_DEBUG"); ok {
		c.Logging.DebugMode = v
		if v {
			c.Logging.Level = "debug"
		}
	}
}

func envBool(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !IsValidTheme(c.UI.DefaultTheme) {
		return fmt.Errorf("invalid default theme: %s (valid: %v)", c.UI.DefaultTheme, ValidThemes)
	}
	if c.UI.NarrowWidth < 0 {
		return fmt.Errorf("ui.narrow_width must not be negative, got %d", c.UI.NarrowWidth)
	}
	if c.Sound.SampleRate <= 0 {
		return fmt.Errorf("sound.sample_rate must be positive, got %d", c.Sound.SampleRate)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("sound.volume must be within [0,1], got %v", c.Sound.Volume)
	}
	if c.Sound.MaxVoices < 1 {
		return fmt.Errorf("sound.max_voices must be at least 1, got %d", c.Sound.MaxVoices)
	}
	return c.Logging.validate()
}

// FindWorkspaceRoot walks up from the working directory looking for an
// existing .keycalc directory. Falls back to the working directory.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}
