// SPDX-License-Identifier: EPL-2.0

package table

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/ik5/wavetable/utils"
)

// Table owns the flat sample storage of a wavetable, laid out as
// [dimension][waveform][sample] with dimension varying slowest.
type Table struct {
	settings Settings
	samples  []float32
}

// New validates settings and allocates zero-filled storage of
// settings.TotalSamples() samples.
func New(settings Settings) (*Table, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Table{
		settings: settings,
		samples:  make([]float32, settings.TotalSamples()),
	}, nil
}

// Settings returns the table geometry.
func (t *Table) Settings() Settings { return t.settings }

// Samples returns the table storage itself, not a copy. Hosts write waveform
// data into it directly; its length never changes.
func (t *Table) Samples() []float32 { return t.samples }

// Waveform returns the writable storage of a single waveform.
func (t *Table) Waveform(dimension, waveform int) ([]float32, error) {
	if dimension < 0 || dimension >= t.settings.DimensionCount ||
		waveform < 0 || waveform >= t.settings.WaveformsPerDimension {
		return nil, fmt.Errorf("%w: dimension %d waveform %d", ErrWaveformOutOfRange, dimension, waveform)
	}

	offset := t.waveformOffset(dimension, waveform)

	return t.samples[offset : offset+t.settings.WaveformLength : offset+t.settings.WaveformLength], nil
}

func (t *Table) waveformOffset(dimension, waveform int) int {
	return dimension*t.settings.SamplesPerDimension() + waveform*t.settings.WaveformLength
}

// Sample interpolates one output value at position along the waveform axis.
//
// mixes holds two slots per dimension: mixes[2*d] selects a continuous
// waveform within dimension d (0 is the first waveform, 1 the last) and
// mixes[2*d+1] cross-fades dimension d into the result of the lower
// dimensions. The blend slot of dimension 0 is ignored.
//
// position must be in [0, WaveformLength-1).
func (t *Table) Sample(position float32, mixes []float32) (float32, error) {
	if err := t.checkPosition(position); err != nil {
		return 0, err
	}
	if len(mixes) != t.settings.MixesLength() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrMixesLength, len(mixes), t.settings.MixesLength())
	}

	lastWaveform := float32(t.settings.WaveformsPerDimension - 1)

	waveform, err := selectWaveform(mixes[0], lastWaveform)
	if err != nil {
		return 0, err
	}

	// Each higher dimension is blended into the accumulated result of the
	// dimensions below it.
	sample := t.sampleDimension(0, waveform, position)
	for dimension := 1; dimension < t.settings.DimensionCount; dimension++ {
		waveform, err := selectWaveform(mixes[dimension*2], lastWaveform)
		if err != nil {
			return 0, err
		}

		forDimension := t.sampleDimension(dimension, waveform, position)
		sample = utils.Mix(mixes[dimension*2+1], sample, forDimension)
	}

	return sample, nil
}

func (t *Table) checkPosition(position float32) error {
	// written so that NaN fails too
	if !(position >= 0 && position < float32(t.settings.WaveformLength-1)) {
		return fmt.Errorf("%w: %v not in [0, %d)", ErrPositionOutOfRange, position, t.settings.WaveformLength-1)
	}

	return nil
}

func selectWaveform(factor, lastWaveform float32) (float32, error) {
	if !(factor >= 0 && factor <= 1) {
		return 0, fmt.Errorf("%w: %v", ErrMixOutOfRange, factor)
	}

	return factor * lastWaveform, nil
}

// sampleDimension blends the two waveforms around a continuous waveform index.
func (t *Table) sampleDimension(dimension int, waveform, position float32) float32 {
	low, high := math32.Floor(waveform), math32.Ceil(waveform)

	lowSample := t.sampleWaveform(dimension, int(low), position)
	highSample := t.sampleWaveform(dimension, int(high), position)

	return utils.Mix(waveform-low, lowSample, highSample)
}

// sampleWaveform interpolates between the two stored samples around position.
// An integral position degenerates to a direct lookup.
func (t *Table) sampleWaveform(dimension, waveform int, position float32) float32 {
	offset := t.waveformOffset(dimension, waveform)
	low, high := math32.Floor(position), math32.Ceil(position)

	return utils.Mix(position-low, t.samples[offset+int(low)], t.samples[offset+int(high)])
}
