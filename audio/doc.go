// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample stream primitives shared by the
// decoders, the waveform loader and the voice renderer.
//
// # Source Interface
//
// Everything that produces audio implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in formats/* return a Source for a file, and host.Voice is a
// Source that renders a wavetable voice.
//
// # Format Registry
//
// A Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("pad.wav")
//
// # Preparing Waveforms
//
// Imported audio rarely matches the table geometry. MonoMixer folds
// channels down, ReadAll collects a whole stream and Resample stretches
// one cycle to the table's waveform length:
//
//	mono := audio.NewMonoMixer(src)
//	cycle, _ := audio.ReadAll(mono, 4096)
//	waveform, _ := audio.Resample(cycle, 2048)
//
// Resample treats its input as periodic, so the ends of the result meet
// without a step when the waveform loops.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]; 0.0 is silence.
//
// # Error Handling
//
// ReadSamples returns io.EOF when a stream is finished. ReadAll consumes
// that io.EOF and returns only real failures. Other errors of this package
// are sentinels to match with errors.Is:
//
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // unknown extension
//	}
package audio
