package calcapi

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way a browser prints a JavaScript number:
// integers without a fraction, shortest round-trip digits, exponent
// form only below 1e-6 or from 1e21 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return s
	}

	if f == 0 {
		// -0 prints as 0
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatArgs joins numbers with ", " as in "add(5, 3)".
func FormatArgs(args []float64) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = FormatNumber(arg)
	}
	return strings.Join(parts, ", ")
}
