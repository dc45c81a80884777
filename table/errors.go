// SPDX-License-Identifier: EPL-2.0

package table

import "errors"

var (
	// ErrInvalidSettings indicates a table geometry that cannot be sampled.
	ErrInvalidSettings = errors.New("invalid wavetable settings")

	// ErrPositionOutOfRange indicates a sample position outside [0, waveform_length-1).
	ErrPositionOutOfRange = errors.New("sample position out of range")

	// ErrMixesLength indicates a mix vector whose length is not dimension_count*2.
	ErrMixesLength = errors.New("mix vector length mismatch")

	// ErrMixOutOfRange indicates a waveform-select factor outside [0, 1].
	ErrMixOutOfRange = errors.New("waveform select factor out of range")

	// ErrWaveformOutOfRange indicates a dimension or waveform index outside the table.
	ErrWaveformOutOfRange = errors.New("waveform index out of range")

	// ErrBufferTooShort indicates an input buffer smaller than the requested block.
	ErrBufferTooShort = errors.New("buffer shorter than sample count")
)
