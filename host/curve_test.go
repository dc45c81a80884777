// SPDX-License-Identifier: EPL-2.0

package host

import (
	"math"
	"testing"
)

func TestParam_At(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		param  Param
		sample int
		want   float32
	}{
		{name: "empty uses default", param: Param{Default: 0.3}, sample: 7, want: 0.3},
		{name: "in range", param: Param{Values: []float32{0.1, 0.2, 0.3}}, sample: 1, want: 0.2},
		{name: "past end reuses last", param: Param{Values: []float32{0.1, 0.2, 0.3}}, sample: 500, want: 0.3},
		{name: "single value", param: Param{Values: []float32{0.9}}, sample: 127, want: 0.9},
		{name: "negative index", param: Param{Values: []float32{0.4, 0.5}}, sample: -1, want: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.param.At(tt.sample); got != tt.want {
				t.Errorf("At(%d) = %v, want %v", tt.sample, got, tt.want)
			}
		})
	}
}

func TestLFO_At(t *testing.T) {
	t.Parallel()

	lfo := LFO{Rate: 2, SampleRate: 100}

	// one cycle is 50 samples
	tests := []struct {
		sample int
		want   float32
	}{
		{sample: 0, want: 0},
		{sample: 25, want: 1},
		{sample: 50, want: 0},
		{sample: 75, want: 1},
		{sample: 12, want: 0.48},
	}
	for _, tt := range tests {
		if got := lfo.At(tt.sample); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("At(%d) = %v, want %v", tt.sample, got, tt.want)
		}
	}

	for i := range 1000 {
		if v := lfo.At(i); v < 0 || v > 1 {
			t.Fatalf("At(%d) = %v, outside [0, 1]", i, v)
		}
	}

	if got := (LFO{Rate: 1}).At(10); got != 0 {
		t.Errorf("At() without a sample rate = %v, want 0", got)
	}
}

func TestLFO_Phase(t *testing.T) {
	t.Parallel()

	if got := (LFO{Rate: 1, SampleRate: 10, Phase: 0.5}).At(0); got != 1 {
		t.Errorf("At(0) with half-cycle phase = %v, want 1", got)
	}
}

func TestLFO_LongRunning(t *testing.T) {
	t.Parallel()

	lfo := LFO{Rate: 1, SampleRate: 44100}
	// a quarter cycle past 1000 whole cycles, beyond 2^24 samples
	start := 44100*1000 + 11025

	if got := lfo.At(start); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("At(%d) = %v, want 0.5", start, got)
	}

	prev := lfo.At(start)
	for i := 1; i <= 8; i++ {
		v := lfo.At(start + i)
		if v <= prev {
			t.Fatalf("At(%d) = %v, not above At(%d) = %v", start+i, v, start+i-1, prev)
		}
		prev = v
	}
}

func TestScaled_At(t *testing.T) {
	t.Parallel()

	s := Scaled{Curve: Constant(0.5), Min: 200, Max: 400}
	if got := s.At(0); got != 300 {
		t.Errorf("At() = %v, want 300", got)
	}
}

func TestClamp01(t *testing.T) {
	t.Parallel()

	nan := float32(math.NaN())
	tests := map[float32]float32{-1: 0, 0: 0, 0.5: 0.5, 1: 1, 7: 1}
	for in, want := range tests {
		if got := clamp01(in); got != want {
			t.Errorf("clamp01(%v) = %v, want %v", in, got, want)
		}
	}
	if got := clamp01(nan); got != 0 {
		t.Errorf("clamp01(NaN) = %v, want 0", got)
	}
}
