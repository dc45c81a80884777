// SPDX-License-Identifier: EPL-2.0

// Package host drives engine handles the way an audio callback does.
//
// Each frame a Voice evaluates its control curves for every sample, writes
// them into the handle's mix and frequency buffers, asks the engine to
// generate and hands the output on. Select and blend values are clamped to
// [0, 1]. The blend slot of dimension 0 is always written as 0.
//
// A Voice is an audio.Source, so it can be drained into a WAV file or handed
// to a player:
//
//	v, _ := host.NewVoice(eng, tableID, 44100, host.Controls{
//		Frequency: host.Constant(220),
//		Select:    []host.Curve{host.LFO{Rate: 2, SampleRate: 44100}},
//	}, host.WithLength(44100))
//	samples, _ := audio.ReadAll(v, 0)
package host
