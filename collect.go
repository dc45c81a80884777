// SPDX-License-Identifier: EPL-2.0

package wavetable

import (
	"fmt"
	"io"

	"github.com/ik5/wavetable/audio"
	"github.com/ik5/wavetable/utils"
)

// CollectMono16 drains src, mixes it down to mono and returns the samples as
// 16-bit PCM along with the sample rate. bufferSize is the read size in
// frames; zero uses the source's preference.
//
// The source is not closed.
func CollectMono16(src audio.Source, bufferSize int) ([]int16, int, error) {
	var mono audio.Source = src
	if src.Channels() > 1 {
		mono = audio.NewMonoMixer(src)
	}

	if bufferSize <= 0 {
		bufferSize = max(mono.BufSize(), 1)
	}

	pcm16 := make([]int16, 0, bufferSize)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		pcm16 = utils.AppendInt16(pcm16, buf[:n])

		if err == io.EOF {
			break
		}
		if err != nil {
			return pcm16, src.SampleRate(), fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm16, src.SampleRate(), nil
}
