package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KEYCALC_THEME", "")
	t.Setenv("KEYCALC_SOUND", "")
	t.Setenv("KEYCALC_DEBUG", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UI.DefaultTheme != ThemeDark {
		t.Errorf("expected DefaultTheme=dark, got %s", cfg.UI.DefaultTheme)
	}
	if !cfg.Sound.Enabled {
		t.Error("expected sound enabled by default")
	}
	if cfg.Sound.MaxVoices != 4 {
		t.Errorf("expected MaxVoices=4, got %d", cfg.Sound.MaxVoices)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), DirName, "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.DefaultTheme = ThemeNeon
	cfg.Sound.Volume = 0.5
	cfg.Logging.Categories = map[string]bool{"sound": false}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("known category rejected: %v", err)
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.UI.DefaultTheme != ThemeNeon {
		t.Errorf("expected DefaultTheme=neon, got %s", loaded.UI.DefaultTheme)
	}
	if loaded.Sound.Volume != 0.5 {
		t.Errorf("expected Volume=0.5, got %v", loaded.Sound.Volume)
	}
	if enabled, ok := loaded.Logging.Categories["sound"]; !ok || enabled {
		t.Error("sound category should stay disabled")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.NarrowWidth != DefaultUIConfig().NarrowWidth {
		t.Errorf("expected default narrow width, got %d", cfg.UI.NarrowWidth)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  default_theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.DefaultTheme != ThemeLight {
		t.Errorf("expected light, got %s", cfg.UI.DefaultTheme)
	}
	if cfg.Sound.SampleRate != 44100 {
		t.Errorf("expected default sample rate, got %d", cfg.Sound.SampleRate)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown theme", func(c *Config) { c.UI.DefaultTheme = "sepia" }},
		{"negative narrow width", func(c *Config) { c.UI.NarrowWidth = -1 }},
		{"zero sample rate", func(c *Config) { c.Sound.SampleRate = 0 }},
		{"volume too loud", func(c *Config) { c.Sound.Volume = 1.5 }},
		{"no voices", func(c *Config) { c.Sound.MaxVoices = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }},
		{"unknown log category", func(c *Config) { c.Logging.Categories = map[string]bool{"kernel": true} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUIConfig_Durations(t *testing.T) {
	c := UIConfig{}
	if c.FlashDuration() != 300*time.Millisecond {
		t.Errorf("unexpected flash fallback %v", c.FlashDuration())
	}
	if c.ShakeDuration() != 500*time.Millisecond {
		t.Errorf("unexpected shake fallback %v", c.ShakeDuration())
	}
	c.FlashMillis = 120
	if c.FlashDuration() != 120*time.Millisecond {
		t.Errorf("unexpected flash duration %v", c.FlashDuration())
	}
}

func TestIsValidTheme(t *testing.T) {
	for _, name := range ValidThemes {
		if !IsValidTheme(name) {
			t.Errorf("%s should be valid", name)
		}
	}
	if IsValidTheme("Dark") {
		t.Error("theme names are case sensitive")
	}
}

func TestFindWorkspaceRoot_PrefersKeycalcDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, DirName), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", DirName, err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	origWD, _ := os.Getwd()
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	got, err := FindWorkspaceRoot()
	if err != nil {
		t.Fatalf("FindWorkspaceRoot: %v", err)
	}
	// Resolve symlinked temp dirs (macOS /var -> /private/var).
	want, _ := filepath.EvalSymlinks(root)
	got, _ = filepath.EvalSymlinks(got)
	if got != want {
		t.Fatalf("FindWorkspaceRoot=%q, want %q", got, want)
	}
}

func TestPath(t *testing.T) {
	got := Path("/tmp/ws")
	want := filepath.Join("/tmp/ws", ".keycalc", "config.yaml")
	if got != want {
		t.Fatalf("Path=%q, want %q", got, want)
	}
}
