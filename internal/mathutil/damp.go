package mathutil

import "math"

// DampFactor returns the convergence fraction 1 - e^(-rate*dt) for one frame
// of exponential damping. Negative rate or dt are treated as zero, and very
// large rate*dt collapses to 1 so an infinite-smoothing configuration snaps
// straight to the target.
func DampFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	x := rate * dt
	if x > 30 || math.IsInf(x, 1) {
		return 1
	}
	return 1 - math.Exp(-x)
}

// Damp moves current toward target by one frame of exponential decay.
func Damp(current, target, rate, dt float64) float64 {
	return current + (target-current)*DampFactor(rate, dt)
}
