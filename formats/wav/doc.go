// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes PCM WAV files through go-audio/wav.
//
// The Decoder accepts 16, 24 and 32-bit integer PCM, plain or
// WAVE_FORMAT_EXTENSIBLE, and serves interleaved float32 samples in
// [-1, 1]:
//
//	f, _ := os.Open("pad.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Readers that cannot seek are buffered in memory first.
//
// Write16 and WriteFloat32 produce 16-bit PCM. They take an io.WriteSeeker
// because the RIFF sizes are written after the data:
//
//	f, _ := os.Create("render.wav")
//	err := wav.WriteFloat32(f, 44100, 1, samples)
package wav
