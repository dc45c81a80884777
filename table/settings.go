// SPDX-License-Identifier: EPL-2.0

package table

import (
	"fmt"
	"math"
)

// Settings describes the geometry of a wavetable. It is immutable once a
// Table has been built from it.
type Settings struct {
	// WaveformLength is the number of samples in a single waveform.
	WaveformLength int
	// DimensionCount is the number of dimensions that can be mixed.
	DimensionCount int
	// WaveformsPerDimension is the number of waveforms stored in each dimension.
	WaveformsPerDimension int
	// BaseFrequency is the playback frequency at which one stored sample is
	// played per output sample.
	BaseFrequency float32
}

// SamplesPerDimension is WaveformsPerDimension * WaveformLength.
func (s Settings) SamplesPerDimension() int {
	return s.WaveformsPerDimension * s.WaveformLength
}

// TotalSamples is the length of the flat sample storage of a Table.
func (s Settings) TotalSamples() int {
	return s.DimensionCount * s.SamplesPerDimension()
}

// MixesLength is the length of the per-sample mix vector: two slots per dimension.
func (s Settings) MixesLength() int {
	return s.DimensionCount * 2
}

// Validate reports a configuration error wrapping ErrInvalidSettings.
func (s Settings) Validate() error {
	switch {
	case s.WaveformLength < 2:
		return fmt.Errorf("%w: waveform length %d, need at least 2", ErrInvalidSettings, s.WaveformLength)
	case s.DimensionCount < 1:
		return fmt.Errorf("%w: dimension count %d, need at least 1", ErrInvalidSettings, s.DimensionCount)
	case s.WaveformsPerDimension < 1:
		return fmt.Errorf("%w: waveforms per dimension %d, need at least 1", ErrInvalidSettings, s.WaveformsPerDimension)
	case !(s.BaseFrequency > 0) || math.IsInf(float64(s.BaseFrequency), 1):
		return fmt.Errorf("%w: base frequency %v must be positive and finite", ErrInvalidSettings, s.BaseFrequency)
	}

	// the flat index must fit in an int
	if s.SamplesPerDimension()/s.WaveformsPerDimension != s.WaveformLength ||
		s.TotalSamples()/s.DimensionCount != s.SamplesPerDimension() {
		return fmt.Errorf("%w: table of %d x %d x %d samples is too large",
			ErrInvalidSettings, s.DimensionCount, s.WaveformsPerDimension, s.WaveformLength)
	}

	return nil
}
