// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through jfreymuth/oggvorbis.
// Samples arrive as float32 already, so no rescaling happens.
package vorbis
