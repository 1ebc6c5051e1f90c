// Package particles animates the small radial burst drawn over the display
// after a successful evaluation.
package particles

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultFPS is the animation frame rate.
const DefaultFPS = 30

// Pixel speeds are converted to cells per second with this factor. Rows are
// roughly twice as tall as columns, so vertical motion is halved again.
const (
	cellsPerPixel = 0.1
	rowAspect     = 0.5
)

// Config sizes a burst.
type Config struct {
	// Width is the current terminal width in columns.
	Width int
	// NarrowWidth is the width at or below which the reduced burst is used.
	NarrowWidth int
	// FPS is the step rate; DefaultFPS if zero.
	FPS int
}

func (c Config) narrow() bool { return c.Width <= c.NarrowWidth }

func (c Config) fps() int {
	if c.FPS <= 0 {
		return DefaultFPS
	}
	return c.FPS
}

type particle struct {
	proj *harmonica.Projectile
	pos  harmonica.Point
	life time.Duration
	age  time.Duration
}

func (p *particle) remaining() float64 {
	if p.life <= 0 {
		return 0
	}
	return 1 - float64(p.age)/float64(p.life)
}

// Burst is a set of particles flying out from a single origin.
type Burst struct {
	particles []*particle
	frame     time.Duration
}

// NewBurst spawns a burst at origin (column, row). Narrow terminals get five
// slower, shorter-lived particles; wider ones get ten.
func NewBurst(cfg Config, origin harmonica.Point, rng *rand.Rand) *Burst {
	n, speedMin, speedSpan, lifeMin, lifeSpan := 10, 50.0, 50.0, 800, 400
	if cfg.narrow() {
		n, speedMin, speedSpan, lifeMin, lifeSpan = 5, 30.0, 30.0, 400, 200
	}

	fps := cfg.fps()
	b := &Burst{
		particles: make([]*particle, 0, n),
		frame:     time.Second / time.Duration(fps),
	}
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		speed := (speedMin + rng.Float64()*speedSpan) * cellsPerPixel
		vel := harmonica.Vector{
			X: math.Cos(angle) * speed,
			Y: math.Sin(angle) * speed * rowAspect,
		}
		life := time.Duration(lifeMin+rng.IntN(lifeSpan)) * time.Millisecond
		b.particles = append(b.particles, &particle{
			proj: harmonica.NewProjectile(harmonica.FPS(fps), origin, vel, harmonica.Vector{}),
			pos:  origin,
			life: life,
		})
	}
	return b
}

// Step advances the animation by one frame and drops expired particles.
func (b *Burst) Step() {
	live := b.particles[:0]
	for _, p := range b.particles {
		p.age += b.frame
		if p.age >= p.life {
			continue
		}
		p.pos = p.proj.Update()
		live = append(live, p)
	}
	for i := len(live); i < len(b.particles); i++ {
		b.particles[i] = nil
	}
	b.particles = live
}

// Alive returns the number of particles still in flight.
func (b *Burst) Alive() int {
	if b == nil {
		return 0
	}
	return len(b.particles)
}

// Frame returns the step interval.
func (b *Burst) Frame() time.Duration {
	return b.frame
}

// Render draws the burst into a w x h block of text. Glyphs shrink as
// particles age.
func (b *Burst) Render(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}
	if b != nil {
		for _, p := range b.particles {
			x, y := int(math.Round(p.pos.X)), int(math.Round(p.pos.Y))
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			grid[y][x] = glyph(p.remaining())
		}
	}
	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func glyph(remaining float64) rune {
	switch {
	case remaining > 2.0/3:
		return '●'
	case remaining > 1.0/3:
		return '•'
	default:
		return '·'
	}
}
