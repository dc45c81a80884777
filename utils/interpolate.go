// SPDX-License-Identifier: EPL-2.0

package utils

// Mix blends low and high linearly: (1-t)*low + t*high.
// Mix(0, a, b) is exactly a and Mix(1, a, b) is exactly b.
func Mix(t, low, high float32) float32 {
	return ((1 - t) * low) + (t * high)
}

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
