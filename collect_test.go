// SPDX-License-Identifier: EPL-2.0

package wavetable

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/wavetable/internal/audiotest"
)

func TestCollectMono16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		channels   int
		frames     int
		bufferSize int
		value      float32
		want       int16
	}{
		{name: "mono", channels: 1, frames: 1000, bufferSize: 128, value: 0.5, want: 16383},
		{name: "stereo", channels: 2, frames: 1000, bufferSize: 100, value: -0.5, want: -16383},
		{name: "clipped", channels: 1, frames: 10, bufferSize: 4, value: 3, want: math.MaxInt16},
		{name: "source buffer size", channels: 2, frames: 5000, bufferSize: 0, value: 0.25, want: 8191},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(22050, tt.channels, tt.frames, tt.value)

			pcm16, rate, err := CollectMono16(src, tt.bufferSize)
			if err != nil {
				t.Fatalf("CollectMono16() error = %v", err)
			}
			if rate != 22050 {
				t.Errorf("rate = %d, want 22050", rate)
			}
			if len(pcm16) != tt.frames {
				t.Fatalf("len = %d, want %d", len(pcm16), tt.frames)
			}
			for i, v := range pcm16 {
				if v != tt.want {
					t.Fatalf("pcm16[%d] = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestCollectMono16_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewConstantSource(8000, 1, 100, 0)
	src.Err = boom

	if _, _, err := CollectMono16(src, 16); !errors.Is(err, boom) {
		t.Errorf("CollectMono16() error = %v, want boom", err)
	}
}

func BenchmarkCollectMono16(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	b.ReportAllocs()

	for range b.N {
		src.Reset()
		_, _, _ = CollectMono16(src, 4096)
	}
}
