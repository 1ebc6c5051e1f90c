//go:build !cgo

package sound

import (
	"context"
	"io"
	"os"
	"sync"

	"keycalc/internal/logging"
)

// bellPlayer rings the terminal bell once per tone. Used where no native
// audio driver is linked in.
type bellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlayer returns the terminal bell backend, writing to out (stderr if nil).
func NewPlayer(_ int, out io.Writer) (Player, error) {
	if out == nil {
		out = os.Stderr
	}
	logging.Sound("audio backend: terminal bell")
	return &bellPlayer{out: out}, nil
}

func (p *bellPlayer) Play(ctx context.Context, _ Tone) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := io.WriteString(p.out, "\a")
	return err
}

func (p *bellPlayer) Close() error { return nil }
