// SPDX-License-Identifier: EPL-2.0

// Package loader fills waveform slots of a table from audio files.
//
// A file is decoded, mixed down to mono, stretched to the table's waveform
// length as one cycle and optionally peak-normalised before it is written.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/wavetable/audio"
	"github.com/ik5/wavetable/formats/aiff"
	"github.com/ik5/wavetable/formats/mp3"
	"github.com/ik5/wavetable/formats/vorbis"
	"github.com/ik5/wavetable/formats/wav"
	"github.com/ik5/wavetable/table"
	"github.com/viterin/vek/vek32"
)

var ErrSilentSource = errors.New("cannot normalise a silent waveform")

// Options tune how a source becomes a waveform.
type Options struct {
	// Registry resolves file extensions. Nil means DefaultRegistry.
	Registry *audio.Registry
	// Normalize scales the waveform so its peak is 1.
	Normalize bool
}

// DefaultRegistry knows every decoder under formats/.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// Load decodes path and writes it into waveform wf of dimension dim.
func Load(t *table.Table, dim, wf int, path string, opts Options) error {
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	dec, err := registry.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := LoadSource(t, dim, wf, src, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// LoadSource drains src and writes it into waveform wf of dimension dim.
// src is closed before returning.
func LoadSource(t *table.Table, dim, wf int, src audio.Source, opts Options) error {
	mono := audio.NewMonoMixer(src)
	defer mono.Close()

	dst, err := t.Waveform(dim, wf)
	if err != nil {
		return err
	}

	samples, err := audio.ReadAll(mono, 0)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	cycle, err := audio.Resample(samples, len(dst))
	if err != nil {
		return err
	}

	if opts.Normalize {
		if err := normalize(cycle); err != nil {
			return err
		}
	}

	copy(dst, cycle)

	return nil
}

func normalize(samples []float32) error {
	abs := make([]float32, len(samples))
	copy(abs, samples)
	vek32.Abs_Inplace(abs)

	peak := vek32.Max(abs)
	if peak == 0 {
		return ErrSilentSource
	}
	vek32.MulNumber_Inplace(samples, 1/peak)

	return nil
}
