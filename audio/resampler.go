// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/wavetable/utils"
)

// Resample stretches one cycle of a periodic signal to length samples using
// cubic interpolation. Neighbours wrap around the ends of src, so the first
// and last samples join smoothly when the result is looped.
func Resample(src []float32, length int) ([]float32, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if len(src) == 0 {
		return nil, ErrEmptySource
	}

	dst := make([]float32, length)
	if len(src) == length {
		copy(dst, src)
		return dst, nil
	}

	n := len(src)
	at := func(i int) float32 { return src[((i%n)+n)%n] }

	// source samples per destination sample
	ratio := float64(n) / float64(length)
	for i := range dst {
		pos := float64(i) * ratio
		base := int(pos)
		frac := float32(pos - float64(base))

		dst[i] = utils.CubicInterpolate(at(base-1), at(base), at(base+1), at(base+2), frac)
	}

	return dst, nil
}
