// SPDX-License-Identifier: EPL-2.0

package table

import (
	"errors"
	"math"
	"testing"
)

func TestHandle_NewIsIdle(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 2, WaveformsPerDimension: 2, BaseFrequency: 440})
	h := NewHandle(tbl)

	if h.Phase() != 0 {
		t.Errorf("Phase() = %v, want 0", h.Phase())
	}
	if len(h.Mixes()) != 4 {
		t.Errorf("len(Mixes()) = %d, want 4", len(h.Mixes()))
	}
	if h.Table() != tbl {
		t.Error("Table() does not return the bound table")
	}
}

func TestHandle_PhaseAdvanceAndWrap(t *testing.T) {
	t.Parallel()

	// span is waveform length - 1 = 3
	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 1, WaveformsPerDimension: 2, BaseFrequency: 440})
	h := NewHandle(tbl)

	wantPhases := []float32{0, 1, 2, 0, 1, 2, 0}
	for i, want := range wantPhases {
		if h.Phase() != want {
			t.Fatalf("step %d: Phase() = %v, want %v", i, h.Phase(), want)
		}

		sample, err := h.NextSample(440)
		if err != nil {
			t.Fatalf("step %d: NextSample() error = %v", i, err)
		}
		// sample uses the phase from before the advance
		if sample != want {
			t.Errorf("step %d: NextSample() = %v, want %v", i, sample, want)
		}
	}
}

func TestHandle_FractionalWrap(t *testing.T) {
	t.Parallel()

	// span 4, increment 1.5: 0, 1.5, 3, 4.5 -> 0.5, 2, 3.5, 5 -> 1
	tbl := newFilledTable(t, Settings{WaveformLength: 5, DimensionCount: 1, WaveformsPerDimension: 1, BaseFrequency: 100})
	h := NewHandle(tbl)

	if got := h.PhaseIncrement(150); got != 1.5 {
		t.Fatalf("PhaseIncrement(150) = %v, want 1.5", got)
	}

	wantPhases := []float32{1.5, 3, 0.5, 2, 3.5, 1}
	for i, want := range wantPhases {
		if _, err := h.NextSample(150); err != nil {
			t.Fatalf("NextSample() error = %v", err)
		}
		if math.Abs(float64(h.Phase()-want)) > 1e-5 {
			t.Errorf("step %d: Phase() = %v, want %v", i, h.Phase(), want)
		}
	}
}

func TestHandle_LargeIncrementWraps(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 1, WaveformsPerDimension: 1, BaseFrequency: 1})
	h := NewHandle(tbl)

	for range 100 {
		if _, err := h.NextSample(7.25); err != nil {
			t.Fatalf("NextSample() error = %v", err)
		}
		if h.Phase() < 0 || h.Phase() >= 3 {
			t.Fatalf("Phase() = %v, want within [0, 3)", h.Phase())
		}
	}
}

func TestHandle_Reset(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 8, DimensionCount: 1, WaveformsPerDimension: 1, BaseFrequency: 440})
	h := NewHandle(tbl)
	h.FrequenciesBuffer(32)

	if _, err := h.NextSample(880); err != nil {
		t.Fatalf("NextSample() error = %v", err)
	}
	h.Reset()

	if h.Phase() != 0 {
		t.Errorf("Phase() after Reset = %v, want 0", h.Phase())
	}
	if len(h.frequencies) != 32 {
		t.Errorf("Reset dropped the frequency buffer")
	}
}

func TestHandle_NegativeFrequencyReportsRange(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 8, DimensionCount: 1, WaveformsPerDimension: 1, BaseFrequency: 440})
	h := NewHandle(tbl)

	if _, err := h.NextSample(-440); err != nil {
		t.Fatalf("first NextSample() error = %v", err)
	}
	if _, err := h.NextSample(-440); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("NextSample() error = %v, want ErrPositionOutOfRange", err)
	}
}

func TestHandle_BufferGrowth(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 3, WaveformsPerDimension: 2, BaseFrequency: 440})
	h := NewHandle(tbl)

	mixes := h.MixesBuffer(8)
	if len(mixes) != 8*3*2 {
		t.Fatalf("len(MixesBuffer(8)) = %d, want %d", len(mixes), 8*3*2)
	}
	for i := range mixes {
		mixes[i] = float32(i)
	}

	freqs := h.FrequenciesBuffer(8)
	for i, f := range freqs {
		if f != DefaultFrequency {
			t.Fatalf("FrequenciesBuffer slot %d = %v, want %v", i, f, DefaultFrequency)
		}
	}
	freqs[3] = 123

	// a smaller request neither shrinks nor clears
	mixes = h.MixesBuffer(2)
	if len(mixes) != 8*3*2 {
		t.Errorf("len(MixesBuffer(2)) = %d, want %d", len(mixes), 8*3*2)
	}
	for i := range mixes {
		if mixes[i] != float32(i) {
			t.Fatalf("mixes[%d] = %v after smaller request, want %v", i, mixes[i], float32(i))
		}
	}
	if got := h.FrequenciesBuffer(1); len(got) != 8 || got[3] != 123 {
		t.Errorf("FrequenciesBuffer(1) = len %d slot3 %v, want len 8 slot3 123", len(got), got[3])
	}

	// growing keeps content and fills new slots
	mixes = h.MixesBuffer(10)
	if len(mixes) != 10*3*2 {
		t.Fatalf("len(MixesBuffer(10)) = %d, want %d", len(mixes), 10*3*2)
	}
	for i := range 8 * 3 * 2 {
		if mixes[i] != float32(i) {
			t.Fatalf("mixes[%d] = %v after growth, want %v", i, mixes[i], float32(i))
		}
	}
	for i := 8 * 3 * 2; i < len(mixes); i++ {
		if mixes[i] != 0 {
			t.Fatalf("new mixes[%d] = %v, want 0", i, mixes[i])
		}
	}
	freqs = h.FrequenciesBuffer(12)
	if freqs[3] != 123 || freqs[11] != DefaultFrequency {
		t.Errorf("FrequenciesBuffer(12) slot3 = %v slot11 = %v, want 123 and %v", freqs[3], freqs[11], DefaultFrequency)
	}
}

// TestHandle_UnpackMixes writes a sentinel at every documented offset of the
// block layout and reads it back through the scratch vector.
func TestHandle_UnpackMixes(t *testing.T) {
	t.Parallel()

	const dims = 3

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: dims, WaveformsPerDimension: 2, BaseFrequency: 440})

	for _, sampleCount := range []int{1, 5, 128} {
		h := NewHandle(tbl)
		mixes := h.MixesBuffer(sampleCount)

		sentinel := func(d, slot, i int) float32 { return float32(d*100000 + slot*10000 + i) }
		for d := range dims {
			for i := range sampleCount {
				mixes[d*2*sampleCount+i] = sentinel(d, 0, i)
				mixes[d*2*sampleCount+sampleCount+i] = sentinel(d, 1, i)
			}
		}

		for i := range sampleCount {
			h.unpackMixes(i, sampleCount)
			for d := range dims {
				if got := h.Mixes()[d*2]; got != sentinel(d, 0, i) {
					t.Errorf("count %d sample %d dim %d select = %v, want %v", sampleCount, i, d, got, sentinel(d, 0, i))
				}
				if got := h.Mixes()[d*2+1]; got != sentinel(d, 1, i) {
					t.Errorf("count %d sample %d dim %d blend = %v, want %v", sampleCount, i, d, got, sentinel(d, 1, i))
				}
			}
		}
	}
}

func TestHandle_Generate(t *testing.T) {
	t.Parallel()

	s := Settings{WaveformLength: 4, DimensionCount: 2, WaveformsPerDimension: 2, BaseFrequency: 440}
	tbl := newFilledTable(t, s)
	h := NewHandle(tbl)

	const n = 6

	mixes := h.MixesBuffer(n)
	for i := range n {
		mixes[0*2*n+i] = 1      // dimension 0 picks waveform 1
		mixes[1*2*n+i] = 0      // dimension 1 picks waveform 0
		mixes[1*2*n+n+i] = 0.5 // halfway between the dimensions
	}
	h.FrequenciesBuffer(n) // default 440 == base frequency

	out, err := h.Generate(n)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(out) != n {
		t.Fatalf("len(Generate()) = %d, want %d", len(out), n)
	}

	// phase walks 0,1,2,0,1,2; (10+p + 100+p) / 2
	for i, got := range out {
		p := float32(i % 3)
		want := (10 + p + 100 + p) / 2
		if got != want {
			t.Errorf("out[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestHandle_GenerateUsesPerSampleFrequency(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 16, DimensionCount: 1, WaveformsPerDimension: 1, BaseFrequency: 100})
	h := NewHandle(tbl)
	h.MixesBuffer(4)
	copy(h.FrequenciesBuffer(4), []float32{100, 200, 50, 300})

	out, err := h.Generate(4)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []float32{0, 1, 3, 3.5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if h.Phase() != 6.5 {
		t.Errorf("Phase() = %v, want 6.5", h.Phase())
	}
}

func TestHandle_GenerateShortBuffers(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 2, WaveformsPerDimension: 2, BaseFrequency: 440})

	h := NewHandle(tbl)
	h.FrequenciesBuffer(16)
	if _, err := h.Generate(16); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("Generate() without mixes error = %v, want ErrBufferTooShort", err)
	}

	h = NewHandle(tbl)
	h.MixesBuffer(16)
	h.FrequenciesBuffer(8)
	if _, err := h.Generate(16); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("Generate() with short frequencies error = %v, want ErrBufferTooShort", err)
	}

	if _, err := h.Generate(-1); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("Generate(-1) error = %v, want ErrBufferTooShort", err)
	}
}

func TestHandle_GenerateStopsOnBadMix(t *testing.T) {
	t.Parallel()

	tbl := newFilledTable(t, Settings{WaveformLength: 4, DimensionCount: 1, WaveformsPerDimension: 2, BaseFrequency: 440})
	h := NewHandle(tbl)

	mixes := h.MixesBuffer(4)
	mixes[2] = 2 // select factor of sample 2
	h.FrequenciesBuffer(4)

	out, err := h.Generate(4)
	if !errors.Is(err, ErrMixOutOfRange) {
		t.Fatalf("Generate() error = %v, want ErrMixOutOfRange", err)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want the 2 samples produced before the failure", len(out))
	}
	if h.Phase() != 2 {
		t.Errorf("Phase() = %v, want 2", h.Phase())
	}
}

func TestHandle_Generate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	tbl := newFilledTable(t, Settings{WaveformLength: 256, DimensionCount: 2, WaveformsPerDimension: 4, BaseFrequency: 100})
	h := NewHandle(tbl)
	h.MixesBuffer(128)
	h.FrequenciesBuffer(128)
	if _, err := h.Generate(128); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = h.Generate(128)
	})

	if allocs > 0 {
		t.Errorf("Generate allocated %v times after warmup, want 0", allocs)
	}
}

func BenchmarkHandle_Generate(b *testing.B) {
	tbl := newFilledTable(b, Settings{WaveformLength: 1470, DimensionCount: 2, WaveformsPerDimension: 2, BaseFrequency: 30})
	h := NewHandle(tbl)
	mixes := h.MixesBuffer(128)
	for i := range mixes {
		mixes[i] = 0.5
	}
	h.FrequenciesBuffer(128)

	b.ReportAllocs()

	for range b.N {
		_, _ = h.Generate(128)
	}
}
