package sound

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"keycalc/internal/config"
	"keycalc/internal/logging"

	"golang.org/x/sync/semaphore"
)

// Mixer fires tones on a Player without blocking the caller. At most
// MaxVoices tones sound at once; a tone triggered while every voice is busy
// is dropped.
type Mixer struct {
	player Player
	voices *semaphore.Weighted
	volume float64

	enabled atomic.Bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	closeOnce sync.Once
}

// NewMixer wraps p using the sound settings from cfg.
func NewMixer(p Player, cfg config.SoundConfig) *Mixer {
	if p == nil {
		p = Nop{}
	}
	voices := cfg.MaxVoices
	if voices <= 0 {
		voices = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Mixer{
		player: p,
		voices: semaphore.NewWeighted(int64(voices)),
		volume: cfg.Volume,
		ctx:    ctx,
		cancel: cancel,
	}
	m.enabled.Store(cfg.Enabled)
	return m
}

// SetEnabled switches playback on or off.
func (m *Mixer) SetEnabled(on bool) {
	m.enabled.Store(on)
}

// Enabled reports whether Trigger will play anything.
func (m *Mixer) Enabled() bool {
	return m.enabled.Load()
}

// Trigger starts t in the background. It returns false if sound is off, the
// mixer is closed, or no voice is free.
func (m *Mixer) Trigger(t Tone) bool {
	if !m.enabled.Load() || m.ctx.Err() != nil {
		return false
	}
	if !m.voices.TryAcquire(1) {
		logging.SoundDebug("voice limit reached, dropping %s tone at %.0f Hz", t.Kind, t.Freq)
		return false
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.voices.Release(1)
		if err := m.player.Play(m.ctx, t.Scale(m.volume)); err != nil && !errors.Is(err, context.Canceled) {
			logging.SoundWarn("play failed: %v", err)
		}
	}()
	return true
}

// Close cancels playing tones, waits for them, and closes the player.
func (m *Mixer) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		err = m.player.Close()
	})
	return err
}
