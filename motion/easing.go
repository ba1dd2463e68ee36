package motion

import "math"

// EaseFunc maps linear progress in [0, 1] onto eased progress in [0, 1].
type EaseFunc func(t float64) float64

// EaseLinear returns t unchanged.
func EaseLinear(t float64) float64 {
	return clampUnit(t)
}

// EaseOutQuad: f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = clampUnit(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic: f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clampUnit(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutQuart is fast at first and settles slowly.
// f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	t = clampUnit(t)
	return 1 - math.Pow(1-t, 4)
}

func clampUnit(t float64) float64 {
	switch {
	case math.IsNaN(t), t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t
}
