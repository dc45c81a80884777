// SPDX-License-Identifier: EPL-2.0

// Package engine is the host-facing side of the wavetable sampler.
//
// The host creates tables and handles through an Engine and refers to them
// by TableID and HandleID. The only memory shared with the host is the set
// of buffers the Engine returns for zero-copy I/O:
//
//	e := engine.New(engine.WithProbe(engine.LogProbe{}))
//
//	tid, err := e.CreateTable(2, 2, 1470, 30)
//	samples, _ := e.TableSamples(tid)
//	copy(samples, waveforms)
//
//	hid, _ := e.CreateHandle(tid)
//	mixes, _ := e.MixesBuffer(hid, 128)
//	freqs, _ := e.FrequenciesBuffer(hid, 128)
//	// ... write the block's controls ...
//	out, err := e.Generate(hid, 128)
//
// Buffers returned by MixesBuffer, FrequenciesBuffer and Generate may be
// reallocated when a larger block is requested, so fetch them again rather
// than caching them across calls.
//
// # Lifetimes
//
// A table must outlive the handles bound to it. DestroyTable does not
// refuse when handles remain; those handles report ErrTableDestroyed until
// the host destroys them.
//
// # Diagnostics
//
// Debug1 to Debug4 pass an id and values to the Probe given with WithProbe.
// They have no effect on engine state.
package engine
