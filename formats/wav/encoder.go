// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavetable/utils"
)

// Write16 writes interleaved 16-bit samples as a PCM WAV file. The header
// sizes are patched on close, hence the io.WriteSeeker.
func Write16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if sampleRate <= 0 || channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: rate %d, channels %d, %d samples",
			ErrInvalidEncoderOptions, sampleRate, channels, len(samples))
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteFloat32 quantizes samples in [-1, 1] to 16 bits and writes them.
func WriteFloat32(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	return Write16(w, sampleRate, channels, utils.AppendInt16(nil, samples))
}
