// Package sound synthesizes the short feedback tones played on key presses
// and routes them to an audio backend.
package sound

import (
	"fmt"
	"time"

	"keycalc/internal/keymap"
)

// Kind is the tonal class of an event. It picks the frequency multiplier.
type Kind int

const (
	KindNumber Kind = iota
	KindOperator
	KindEquals
	KindClear
	KindAdvanced
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	case KindAdvanced:
		return "advanced"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	startGain = 0.1
	endGain   = 0.01
)

// Tone is a single sine blip. Frequency and gain both move exponentially from
// their start to end values over Duration.
type Tone struct {
	Kind     Kind
	Freq     float64
	EndFreq  float64
	Gain     float64
	EndGain  float64
	Duration time.Duration
}

// ToneFor builds a tone of the given class around base Hz.
func ToneFor(kind Kind, base float64, d time.Duration) Tone {
	t := Tone{Kind: kind, Gain: startGain, EndGain: endGain, Duration: d}
	switch kind {
	case KindOperator:
		t.Freq = base * 1.2
	case KindEquals:
		t.Freq = base * 2
		t.EndFreq = base
		return t
	case KindClear:
		t.Freq = base * 0.5
	case KindAdvanced:
		t.Freq = base * 1.5
	default:
		t.Freq = base
	}
	t.EndFreq = t.Freq
	return t
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// ErrorTone is played whenever an operation fails.
var ErrorTone = ToneFor(KindClear, 200, ms(300))

// ForCommand returns the tone for a resolved input. Failed operations get
// ErrorTone regardless of the command. ok is false for silent commands.
func ForCommand(c keymap.Command, failed bool) (Tone, bool) {
	if failed {
		return ErrorTone, true
	}
	switch c.Action {
	case keymap.ActionAppend:
		if len(c.Token) == 1 && c.Token[0] >= '0' && c.Token[0] <= '9' {
			d := float64(c.Token[0] - '0')
			return ToneFor(KindNumber, 440+d*50, ms(100)), true
		}
		if c.Token == "." {
			return ToneFor(KindNumber, 440, ms(100)), true
		}
		return ToneFor(KindOperator, 600, ms(120)), true
	case keymap.ActionEvaluate:
		return ToneFor(KindEquals, 880, ms(200)), true
	case keymap.ActionClear:
		return ToneFor(KindClear, 300, ms(150)), true
	case keymap.ActionDeleteLast:
		return ToneFor(KindClear, 350, ms(80)), true
	case keymap.ActionPercent:
		return ToneFor(KindAdvanced, 700, ms(120)), true
	case keymap.ActionToggleSign:
		return ToneFor(KindAdvanced, 500, ms(100)), true
	case keymap.ActionSquareRoot:
		return ToneFor(KindAdvanced, 800, ms(150)), true
	case keymap.ActionSquare:
		return ToneFor(KindAdvanced, 750, ms(120)), true
	case keymap.ActionReciprocal:
		return ToneFor(KindAdvanced, 650, ms(130)), true
	case keymap.ActionCycleTheme:
		return ToneFor(KindOperator, 800, ms(150)), true
	default:
		return Tone{}, false
	}
}
