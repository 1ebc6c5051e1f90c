package config

import "fmt"

// LogCategories names the per-subsystem log files under .keycalc/logs.
var LogCategories = []string{"boot", "session", "accumulator", "sound", "prefs", "ui"}

// LoggingConfig controls the debug log files. Nothing is written unless
// DebugMode is set; the calculator runs silently by default.
type LoggingConfig struct {
	Level      string          `yaml:"level"`       // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`  // write .keycalc/logs/<date>_<category>.log
	JSONFormat bool            `yaml:"json_format"` // one JSON object per line
	Categories map[string]bool `yaml:"categories"`  // e.g. {sound: false}; unlisted categories stay on
}

func (c *LoggingConfig) validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Level)
	}
	for name := range c.Categories {
		if !isLogCategory(name) {
			return fmt.Errorf("unknown logging category %q (valid: %v)", name, LogCategories)
		}
	}
	return nil
}

func isLogCategory(name string) bool {
	for _, c := range LogCategories {
		if c == name {
			return true
		}
	}
	return false
}
