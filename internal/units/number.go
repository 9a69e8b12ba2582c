package units

import (
	"math"
	"strconv"
)

// round rounds half up (toward positive infinity), matching the display rules.
func round(x float64) float64 {
	r := math.Floor(x + 0.5)
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func round1(x float64) float64 {
	return round(x*10) / 10
}

// formatNumber prints the shortest representation, so 2.0 becomes "2".
func formatNumber(x float64) string {
	if x == 0 {
		x = 0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
