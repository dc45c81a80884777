// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("negative offset")

// Buffer is an in-memory io.WriteSeeker, for encoders that patch headers
// after the data is written.
type Buffer struct {
	data []byte
	off  int
}

func (b *Buffer) Write(p []byte) (int, error) {
	if end := b.off + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	n := copy(b.data[b.off:], p)
	b.off += n

	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.off) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	b.off = int(abs)

	return abs, nil
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte { return b.data }
