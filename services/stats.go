package services

import "math"

// Numeric aggregation helpers. Invalid inputs (NaN, Inf) are excluded from
// both numerator and denominator instead of being counted as zero, so a
// partially-bad dataset still produces usable aggregates.

// SafeMean averages the finite values in vals. Returns 0 when none remain.
func SafeMean(vals []float64) float64 {
	var sum float64
	var n int
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PositiveMean averages the finite, strictly positive values in vals.
// Used for prices, where zero means "missing", not "free".
func PositiveMean(vals []float64) float64 {
	var sum float64
	var n int
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SafeRatio divides num by den, substituting 0 for an empty or invalid
// denominator rather than propagating NaN.
func SafeRatio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsNaN(num) {
		return 0
	}
	return num / den
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
