// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes big-endian PCM AIFF files through go-audio/aiff.
//
// 16, 24 and 32-bit files are served as interleaved float32 samples in
// [-1, 1]. Register the decoder under both extensions:
//
//	registry.Register("aiff", aiff.Decoder{})
//	registry.Register("aif", aiff.Decoder{})
package aiff
