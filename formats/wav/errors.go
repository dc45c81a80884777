// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrUnsupportedWavLayout  = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding   = errors.New("only integer PCM WAV is supported")
	ErrInvalidEncoderOptions = errors.New("invalid WAV encoder options")
)
