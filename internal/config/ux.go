package config

import "time"

// UIConfig holds user interface configuration.
type UIConfig struct {
	// DefaultTheme is used when no preference has been saved yet.
	DefaultTheme string `yaml:"default_theme"`

	// Particles enables the burst animation after a successful evaluation.
	Particles bool `yaml:"particles"`

	// NarrowWidth is the terminal width (columns) at or below which the
	// layout is treated as narrow and the particle burst is reduced.
	NarrowWidth int `yaml:"narrow_width"`

	// FlashMillis is how long the display glows after a result.
	FlashMillis int `yaml:"flash_ms"`

	// ShakeMillis is how long the display shakes after an error.
	ShakeMillis int `yaml:"shake_ms"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		DefaultTheme: ThemeDark,
		Particles:    true,
		NarrowWidth:  60,
		FlashMillis:  300,
		ShakeMillis:  500,
	}
}

// FlashDuration returns FlashMillis as a duration.
func (c UIConfig) FlashDuration() time.Duration {
	if c.FlashMillis <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.FlashMillis) * time.Millisecond
}

// ShakeDuration returns ShakeMillis as a duration.
func (c UIConfig) ShakeDuration() time.Duration {
	if c.ShakeMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.ShakeMillis) * time.Millisecond
}

// SoundConfig configures button tones.
type SoundConfig struct {
	// Enabled is the default when no preference has been saved yet.
	Enabled bool `yaml:"enabled"`

	// SampleRate of the synthesized PCM stream in Hz.
	SampleRate int `yaml:"sample_rate"`

	// Volume scales every tone, 0.0-1.0.
	Volume float64 `yaml:"volume"`

	// MaxVoices caps simultaneously playing tones; extra tones are dropped.
	MaxVoices int `yaml:"max_voices"`
}

// DefaultSoundConfig returns sound defaults.
func DefaultSoundConfig() *SoundConfig {
	return &SoundConfig{
		Enabled:    true,
		SampleRate: 44100,
		Volume:     1.0,
		MaxVoices:  4,
	}
}
