package sound

import (
	"math"
)

// Synthesize renders t as mono signed 16-bit PCM at sampleRate.
func Synthesize(t Tone, sampleRate int) []int16 {
	if sampleRate <= 0 || t.Duration <= 0 || t.Freq <= 0 {
		return nil
	}
	n := int(t.Duration.Seconds() * float64(sampleRate))
	if n == 0 {
		return nil
	}

	endFreq := t.EndFreq
	if endFreq <= 0 {
		endFreq = t.Freq
	}
	g0, g1 := t.Gain, t.EndGain
	if g1 <= 0 {
		g1 = g0
	}

	out := make([]int16, n)
	phase := 0.0
	dt := 1 / float64(sampleRate)
	for i := range out {
		frac := float64(i) / float64(n)
		f := expInterp(t.Freq, endFreq, frac)
		g := g0
		if g0 > 0 {
			g = expInterp(g0, g1, frac)
		}
		v := math.Sin(phase) * g
		out[i] = int16(clamp(v, -1, 1) * math.MaxInt16)
		phase += 2 * math.Pi * f * dt
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
	}
	return out
}

// expInterp moves from a to b exponentially; a and b must be positive.
func expInterp(a, b, frac float64) float64 {
	if a == b {
		return a
	}
	return a * math.Pow(b/a, frac)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale returns a copy of t with both gain endpoints multiplied by vol.
func (t Tone) Scale(vol float64) Tone {
	t.Gain *= vol
	t.EndGain *= vol
	return t
}

// stereoPCM duplicates mono samples into 16-bit little-endian stereo frames.
func stereoPCM(samples []int16) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		j := i * 4
		out[j+0] = byte(s)
		out[j+1] = byte(s >> 8)
		out[j+2] = byte(s)
		out[j+3] = byte(s >> 8)
	}
	return out
}
