// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams through go-mp3. The decoded
// stream is always interleaved stereo; mix it down with audio.MonoMixer when
// a single channel is needed.
package mp3
