// SPDX-License-Identifier: EPL-2.0

package table

import (
	"fmt"

	"github.com/chewxy/math32"
)

// DefaultFrequency fills frequency buffer slots the host has not written yet.
const DefaultFrequency float32 = 440

// Handle is a single voice playing out of a Table. It keeps its own phase
// and block buffers; the Table is only read.
//
// A Handle is not safe for concurrent use. The Table must outlive it.
type Handle struct {
	table *Table

	// phase is the current position along the waveform sample axis.
	phase float32

	// mixes is the host-written mix input for a whole block, see Generate.
	mixes []float32
	// mixScratch holds the unpacked mix vector of the sample being generated.
	mixScratch  []float32
	frequencies []float32
	output      []float32
}

// NewHandle binds a new voice to t with phase 0.
func NewHandle(t *Table) *Handle {
	return &Handle{
		table:      t,
		mixScratch: make([]float32, t.settings.MixesLength()),
	}
}

// Table returns the table the handle reads from.
func (h *Handle) Table() *Table { return h.table }

// Phase returns the current position along the waveform sample axis.
func (h *Handle) Phase() float32 { return h.phase }

// Reset rewinds the voice to phase 0. Buffers are kept.
func (h *Handle) Reset() { h.phase = 0 }

// Mixes returns the mix vector used by the next call to NextSample.
// Generate overwrites it for every sample it produces.
func (h *Handle) Mixes() []float32 { return h.mixScratch }

// PhaseIncrement is how far the phase advances per output sample when playing
// at frequency.
func (h *Handle) PhaseIncrement(frequency float32) float32 {
	return frequency / h.table.settings.BaseFrequency
}

// NextSample samples the table at the current phase with Mixes, then advances
// the phase for frequency, wrapping it into [0, WaveformLength-1).
// The returned sample uses the phase from before the advance.
func (h *Handle) NextSample(frequency float32) (float32, error) {
	sample, err := h.table.Sample(h.phase, h.mixScratch)
	if err != nil {
		return 0, err
	}

	span := float32(h.table.settings.WaveformLength - 1)

	h.phase += h.PhaseIncrement(frequency)
	if h.phase >= span {
		h.phase = math32.Mod(h.phase, span)
	}

	return sample, nil
}

// MixesBuffer grows the mix input buffer to hold sampleCount samples and
// returns it. Existing content is kept and the buffer never shrinks.
//
// For a block of sampleCount samples, the waveform-select values of dimension
// d occupy [d*2*sampleCount, d*2*sampleCount+sampleCount) and its blend
// values the following sampleCount slots.
//
// The returned slice is invalidated by the next growth.
func (h *Handle) MixesBuffer(sampleCount int) []float32 {
	h.mixes = grow(h.mixes, sampleCount*h.table.settings.MixesLength(), 0)

	return h.mixes
}

// FrequenciesBuffer grows the frequency input buffer to sampleCount samples and
// returns it. New slots hold DefaultFrequency.
func (h *Handle) FrequenciesBuffer(sampleCount int) []float32 {
	h.frequencies = grow(h.frequencies, sampleCount, DefaultFrequency)

	return h.frequencies
}

// OutputBuffer grows the output buffer to sampleCount samples and returns it.
func (h *Handle) OutputBuffer(sampleCount int) []float32 {
	h.output = grow(h.output, sampleCount, 0)

	return h.output
}

// Generate produces sampleCount samples from the mix and frequency buffers
// and returns the first sampleCount slots of the output buffer.
//
// On error the output buffer holds the samples produced before the failing
// one and the phase is left where that sample would have been read.
func (h *Handle) Generate(sampleCount int) ([]float32, error) {
	if sampleCount < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrBufferTooShort, sampleCount)
	}

	dimensions := h.table.settings.DimensionCount
	if len(h.mixes) < sampleCount*dimensions*2 {
		return nil, fmt.Errorf("%w: mixes hold %d values, need %d",
			ErrBufferTooShort, len(h.mixes), sampleCount*dimensions*2)
	}
	if len(h.frequencies) < sampleCount {
		return nil, fmt.Errorf("%w: frequencies hold %d values, need %d",
			ErrBufferTooShort, len(h.frequencies), sampleCount)
	}

	output := h.OutputBuffer(sampleCount)

	for i := range sampleCount {
		h.unpackMixes(i, sampleCount)

		sample, err := h.NextSample(h.frequencies[i])
		if err != nil {
			return output[:i], fmt.Errorf("sample %d: %w", i, err)
		}

		output[i] = sample
	}

	return output[:sampleCount], nil
}

// unpackMixes copies the mix vector of sample i of a sampleCount block into
// the scratch vector.
func (h *Handle) unpackMixes(i, sampleCount int) {
	for d := range h.table.settings.DimensionCount {
		base := d * 2 * sampleCount
		h.mixScratch[d*2] = h.mixes[base+i]
		h.mixScratch[d*2+1] = h.mixes[base+sampleCount+i]
	}
}

// grow appends fill until buf holds n values.
func grow(buf []float32, n int, fill float32) []float32 {
	if len(buf) >= n {
		return buf
	}

	if cap(buf) < n {
		grown := make([]float32, len(buf), n)
		copy(grown, buf)
		buf = grown
	}

	start := len(buf)
	buf = buf[:n]
	for i := start; i < n; i++ {
		buf[i] = fill
	}

	return buf
}
