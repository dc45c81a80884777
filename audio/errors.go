// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptySource       = errors.New("source has no samples")
	ErrInvalidLength     = errors.New("target length must be positive")
)
