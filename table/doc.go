// SPDX-License-Identifier: EPL-2.0

// Package table implements wavetable storage and playback.
//
// A Table stores DimensionCount x WaveformsPerDimension waveforms of
// WaveformLength samples in one flat slice:
//
//	samples[dimension*SamplesPerDimension + waveform*WaveformLength + sample]
//
// # Sampling
//
// Table.Sample interpolates at three levels:
//   - within a waveform, between the samples around the position
//   - within a dimension, between the two waveforms around the continuous
//     waveform index picked by that dimension's select factor
//   - across dimensions, blending each dimension into the accumulated result
//     of the dimensions below it by that dimension's blend factor
//
// Every level uses the same linear blend, utils.Mix.
//
// # Playback
//
// A Handle is one voice reading a Table. The host fills its mix and
// frequency buffers for a block, calls Generate and reads the output:
//
//	tbl, _ := table.New(table.Settings{
//	    WaveformLength:        1470,
//	    DimensionCount:        2,
//	    WaveformsPerDimension: 2,
//	    BaseFrequency:         30,
//	})
//	copy(tbl.Samples(), waveforms)
//
//	h := table.NewHandle(tbl)
//	mixes := h.MixesBuffer(128)
//	freqs := h.FrequenciesBuffer(128)
//	// ... write mixes and freqs ...
//	out, err := h.Generate(128)
//
// Handles are not safe for concurrent use. Several handles may read the same
// Table from different goroutines as long as nobody writes the table
// storage meanwhile.
package table
