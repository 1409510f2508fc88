package vmath

import "math"

// Epsilon is the geometric tolerance used for containment and degeneracy checks
const Epsilon = 1e-9

// NearlyEqual reports whether a and b differ by no more than tol
func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Clamp limits value to [lo, hi]
func Clamp(value, lo, hi float64) float64 {
	if value > hi {
		return hi
	}
	if value < lo {
		return lo
	}
	return value
}

// Lerp interpolates from a to b, t is clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + (b-a)*t
}

// det2 returns the determinant of the 2x2 matrix [a b; c d]
func det2(a, b, c, d float64) float64 {
	return a*d - b*c
}
