// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"

	"github.com/ik5/wavetable/audio"
)

const bytesPerSample = 4

// Stream serves a mono audio.Source as little-endian float32 bytes, the
// format the output device reads.
type Stream struct {
	src       audio.Source
	remaining int // samples left; negative is unbounded

	mu  sync.Mutex
	buf []float32
	err error
}

var _ io.Reader = (*Stream)(nil)

// NewStream reads at most limit samples from src. A limit of zero or less
// plays until the source ends.
func NewStream(src audio.Source, limit int) *Stream {
	if limit <= 0 {
		limit = -1
	}

	return &Stream{src: src, remaining: limit}
}

func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}

	n := len(p) / bytesPerSample
	if s.remaining >= 0 {
		n = min(n, s.remaining)
	}
	if n == 0 {
		if s.remaining == 0 {
			s.err = io.EOF
		}
		return 0, s.err
	}

	if cap(s.buf) < n {
		s.buf = make([]float32, n)
	}
	samples := s.buf[:n]

	got, err := s.src.ReadSamples(samples)
	for i, v := range samples[:got] {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	if s.remaining > 0 {
		s.remaining -= got
	}

	if err != nil {
		s.err = err
		if got > 0 {
			return got * bytesPerSample, nil
		}
		return 0, err
	}

	return got * bytesPerSample, nil
}

// Err returns the error that ended the stream, or nil when it ended
// normally.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errors.Is(s.err, io.EOF) {
		return nil
	}

	return s.err
}
