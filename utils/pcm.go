// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// AppendInt16 converts src to 16-bit PCM and appends it to dst.
func AppendInt16(dst []int16, src []float32) []int16 {
	if cap(dst)-len(dst) < len(src) {
		grown := make([]int16, len(dst), len(dst)+max(len(src), cap(dst)))
		copy(grown, dst)
		dst = grown
	}

	start := len(dst)
	dst = dst[:start+len(src)]
	for i, x := range src {
		dst[start+i] = Float32ToInt16(x)
	}

	return dst
}
