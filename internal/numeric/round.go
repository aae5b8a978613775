package numeric

import "math"

// Round2 rounds half away from zero to 2 decimal places.
// Used for points and every presented monetary/hours/percent value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds half away from zero to 4 decimal places.
// Used for persisted equity share percentages.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
