package core

import "math"

const defaultEpsilon = 1e-12

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every element of x is finite.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if !IsFinite(v) {
			return false
		}
	}

	return true
}

// NearlyEqual reports whether a and b are equal within eps, relative to the
// larger magnitude when both are non-zero.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// PowerRatioDB returns 10*log10(before/after), the attenuation from before
// to after in dB. Positive values mean after is weaker.
func PowerRatioDB(before, after float64) float64 {
	if before < 0 || after < 0 {
		return math.NaN()
	}

	if after == 0 {
		if before == 0 {
			return 0
		}
		return math.Inf(1)
	}

	return LinearPowerToDB(before / after)
}
