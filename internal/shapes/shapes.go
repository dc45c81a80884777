// SPDX-License-Identifier: EPL-2.0

// Package shapes generates single-cycle reference waveforms in [-1, 1].
package shapes

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownShape = errors.New("unknown shape")

// CycleLength is the number of samples of one cycle of frequency at
// sampleRate, rounded up.
func CycleLength(sampleRate, frequency float64) int {
	if sampleRate <= 0 || frequency <= 0 {
		return 0
	}

	return int(math.Ceil(sampleRate / frequency))
}

// Sine starts at 0 and rises.
func Sine(n int) []float32 {
	buf := make([]float32, n)
	for x := range buf {
		buf[x] = float32(math.Sin(float64(x) * 2 * math.Pi / float64(n)))
	}

	return buf
}

// Triangle rises from -1 to 1 over the first half cycle and falls back over
// the second.
func Triangle(n int) []float32 {
	buf := make([]float32, n)
	half := float64(n) / 2

	for x := range buf {
		halfPeriods := float64(x) / half
		whole, frac := math.Modf(halfPeriods)

		v := 2*frac - 1
		if int(whole)%2 != 0 {
			v = -v
		}
		buf[x] = float32(v)
	}

	return buf
}

// Square is -1 for the first half cycle and 1 for the second.
func Square(n int) []float32 {
	buf := make([]float32, n)
	half := float64(n) / 2

	for x := range buf {
		buf[x] = -1
		if float64(x) >= half {
			buf[x] = 1
		}
	}

	return buf
}

// Sawtooth rises linearly from -1 towards 1 over the cycle.
func Sawtooth(n int) []float32 {
	buf := make([]float32, n)
	for x := range buf {
		buf[x] = float32(float64(x)/float64(n)*2 - 1)
	}

	return buf
}

var generators = map[string]func(int) []float32{
	"sine":     Sine,
	"triangle": Triangle,
	"square":   Square,
	"sawtooth": Sawtooth,
	"saw":      Sawtooth,
}

// ByName generates the named shape with n samples.
func ByName(name string, n int) ([]float32, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}

	return gen(n), nil
}

// Names lists the accepted shape names.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
