package mathutil

import "math"

// Epsilon guards divisions and zero-length checks throughout the package.
const Epsilon = 1e-6

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Progress normalizes v into [0,1] over [a,b]. It returns 0 below a and 1
// above b, and degenerates to a step at a when b <= a.
func Progress(v, a, b float64) float64 {
	if b-a < Epsilon {
		if v >= a {
			return 1
		}
		return 0
	}
	return Clamp((v-a)/(b-a), 0, 1)
}

// DeadZone snaps values with magnitude below floor to exactly zero.
func DeadZone(v, floor float64) float64 {
	if math.Abs(v) < floor {
		return 0
	}
	return v
}

// Finite replaces NaN/Inf with fallback.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
