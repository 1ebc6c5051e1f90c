package sound

import (
	"context"
)

// Player plays tones. Play blocks until the tone has finished or ctx is done.
type Player interface {
	Play(ctx context.Context, t Tone) error
	Close() error
}

// Nop is a Player that discards tones.
type Nop struct{}

func (Nop) Play(ctx context.Context, _ Tone) error { return ctx.Err() }
func (Nop) Close() error                          { return nil }
