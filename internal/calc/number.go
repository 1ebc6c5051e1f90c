package calc

import (
	"math"
	"strconv"
	"strings"

	"keycalc/internal/evaluator"
)

// FormatNumber renders v as the shortest decimal string that round-trips.
// Magnitudes in [1e-6, 1e21) use plain notation, everything else uses an
// exponent without zero padding ("1e+21", "1.5e-7"). Negative zero renders as "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// ParseLeadingFloat reads the longest numeric prefix of s: optional leading
// spaces, one optional sign, then a decimal literal. Trailing text is ignored,
// so "12+3" yields 12. ok is false when no numeric prefix exists.
func ParseLeadingFloat(s string) (v float64, ok bool) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := evaluator.ScanNumber(s[i:])
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:i+n], 64)
	if err != nil {
		// Out-of-range literals still carry ±Inf, which callers treat as non-finite.
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}
