//go:build cgo

package sound

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"keycalc/internal/logging"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Ebiten allows a single audio context per process, fixed to one sample rate.
var (
	audioCtxOnce sync.Once
	audioCtx     *audio.Context
)

func sharedContext(sampleRate int) (*audio.Context, error) {
	audioCtxOnce.Do(func() {
		audioCtx = audio.NewContext(sampleRate)
	})
	if audioCtx.SampleRate() != sampleRate {
		return nil, errors.New("sound: audio context sample rate is fixed")
	}
	return audioCtx, nil
}

type ebitenPlayer struct {
	ctx        *audio.Context
	sampleRate int

	mu     sync.Mutex
	closed bool
}

// NewPlayer returns the speaker backend. The bell writer is unused on builds
// with a native audio driver.
func NewPlayer(sampleRate int, _ io.Writer) (Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sound: invalid sample rate")
	}
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, err
	}
	logging.Sound("audio backend: ebiten at %d Hz", sampleRate)
	return &ebitenPlayer{ctx: ctx, sampleRate: sampleRate}, nil
}

func (p *ebitenPlayer) Play(ctx context.Context, t Tone) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return errors.New("sound: player closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pcm := stereoPCM(Synthesize(t, p.sampleRate))
	if len(pcm) == 0 {
		return nil
	}
	ap := p.ctx.NewPlayerFromBytes(pcm)
	defer ap.Close()
	ap.Play()

	timer := time.NewTimer(t.Duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		ap.Pause()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *ebitenPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
