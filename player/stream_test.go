// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/wavetable/internal/audiotest"
)

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestStream_Encodes(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSliceSource(8000, 1, []float32{0, 0.5, -1, 0.25})
	s := NewStream(src, 0)

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	samples := decode(got)
	want := []float32{0, 0.5, -1, 0.25}
	if len(samples) != len(want) {
		t.Fatalf("len = %d, want %d", len(samples), len(want))
	}
	for i, w := range want {
		if samples[i] != w {
			t.Errorf("sample %d = %v, want %v", i, samples[i], w)
		}
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after a normal end", err)
	}
}

func TestStream_Limit(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 1000, 0.5)
	s := NewStream(src, 300)

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 300*bytesPerSample {
		t.Errorf("read %d bytes, want %d", len(got), 300*bytesPerSample)
	}
}

func TestStream_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := audiotest.NewConstantSource(8000, 1, 1000, 0.5)
	src.Err = boom

	s := NewStream(src, 0)
	if _, err := s.Read(make([]byte, 64)); !errors.Is(err, boom) {
		t.Errorf("Read() error = %v, want boom", err)
	}
	if err := s.Err(); !errors.Is(err, boom) {
		t.Errorf("Err() = %v, want boom", err)
	}
}

func TestStream_ShortBuffer(t *testing.T) {
	t.Parallel()

	s := NewStream(audiotest.NewConstantSource(8000, 1, 10, 0.5), 0)
	if n, err := s.Read(make([]byte, 3)); n != 0 || err != nil {
		t.Errorf("Read(3 bytes) = %d, %v; want 0, nil", n, err)
	}
}
