// SPDX-License-Identifier: EPL-2.0

package host

import (
	"math"

	"github.com/chewxy/math32"
)

// Curve yields a control value for an absolute sample index.
type Curve interface {
	At(sample int) float32
}

// Constant holds one value forever.
type Constant float32

func (c Constant) At(int) float32 { return float32(c) }

// Param is a run of per-sample values. Indices past the end reuse the last
// value; an empty Param yields Default.
type Param struct {
	Default float32
	Values  []float32
}

func (p Param) At(sample int) float32 {
	switch {
	case len(p.Values) == 0:
		return p.Default
	case sample < 0:
		return p.Values[0]
	case sample >= len(p.Values):
		return p.Values[len(p.Values)-1]
	}

	return p.Values[sample]
}

// LFO is a triangle oscillator mapped to [0, 1]. It starts at 0, peaks at
// half a period and returns to 0.
type LFO struct {
	Rate       float32 // Hz
	SampleRate int
	Phase      float32 // initial phase in cycles
}

func (l LFO) At(sample int) float32 {
	if l.SampleRate <= 0 {
		return 0
	}

	// float64 keeps the position exact past 2^24 samples
	cycles := float64(l.Phase) + float64(l.Rate)*float64(sample)/float64(l.SampleRate)
	p := float32(cycles - math.Floor(cycles))

	return 1 - math32.Abs(2*p-1)
}

// Scaled maps a [0, 1] curve onto [Min, Max].
type Scaled struct {
	Curve    Curve
	Min, Max float32
}

func (s Scaled) At(sample int) float32 {
	return s.Min + (s.Max-s.Min)*s.Curve.At(sample)
}

func clamp01(x float32) float32 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	case x != x: // NaN
		return 0
	}

	return x
}
