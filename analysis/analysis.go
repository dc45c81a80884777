// SPDX-License-Identifier: EPL-2.0

// Package analysis measures rendered output: level metering and an FFT
// estimate of the dominant frequency.
package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/viterin/vek/vek32"
)

const (
	MinFFTSize = 64
	MaxFFTSize = 1 << 16
)

var (
	ErrTooShort          = errors.New("not enough samples to analyse")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrSilent            = errors.New("signal has no energy")
)

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}

	abs := make([]float32, len(samples))
	copy(abs, samples)
	vek32.Abs_Inplace(abs)

	return vek32.Max(abs)
}

// RMS returns the root mean square of samples.
func RMS(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}

	squares := vek32.Mul_Into(make([]float32, len(samples)), samples, samples)

	return float32(math.Sqrt(float64(vek32.Mean(squares))))
}

// DominantFrequency estimates the strongest frequency in samples, in Hz. The
// analysis uses the first power-of-two block, up to MaxFFTSize, under a Hann
// window; the peak bin is refined by parabolic interpolation of log power.
func DominantFrequency(samples []float32, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	n := blockSize(len(samples))
	if n < MinFFTSize {
		return 0, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(samples), MinFFTSize)
	}

	block := make([]float64, n)
	for i := range block {
		block[i] = float64(samples[i])
	}
	vecmath.MulBlockInPlace(block, hann(n))

	in := make([]complex128, n)
	for i, v := range block {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i], im[i] = real(out[i]), imag(out[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	// DC and Nyquist are skipped so both neighbours exist
	peak := 1
	for k := 2; k < bins-1; k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}
	if power[peak] == 0 {
		return 0, ErrSilent
	}

	const floor = 1e-30
	a := math.Log(power[peak-1] + floor)
	b := math.Log(power[peak] + floor)
	c := math.Log(power[peak+1] + floor)

	offset := 0.0
	if denom := a - 2*b + c; denom != 0 {
		offset = 0.5 * (a - c) / denom
	}

	return (float64(peak) + offset) * float64(sampleRate) / float64(n), nil
}

func blockSize(n int) int {
	if n < 1 {
		return 0
	}

	size := 1
	for size*2 <= n && size*2 <= MaxFFTSize {
		size *= 2
	}

	return size
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}

	return w
}
