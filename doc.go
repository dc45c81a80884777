// SPDX-License-Identifier: EPL-2.0

// Package wavetable is a multi-dimensional wavetable sampling engine.
//
// A table holds DimensionCount dimensions of WaveformsPerDimension single
// cycle waveforms, each WaveformLength samples long and recorded at
// BaseFrequency. A voice reads the table with three levels of linear
// interpolation: between neighbouring samples of a waveform, between
// neighbouring waveforms of a dimension (the select factor) and across
// dimensions (the blend factor).
//
// # Packages
//
//   - table: Settings, Table and Handle, the sampling core
//   - engine: an arena of tables and handles addressed by integer ids
//   - host: per-sample control curves and a Voice that drives a handle frame by frame
//   - loader: writes decoded audio files into waveform slots
//   - config: YAML instrument definitions
//   - sequence: MIDI note events as a frequency curve
//   - analysis: peak, RMS and dominant frequency of rendered output
//   - player: live output on the system audio device
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//
// # Quick Start
//
//	inst := config.Default()
//	eng := engine.New()
//	tableID, _ := inst.Build(eng)
//
//	voice, _ := host.NewVoice(eng, tableID, inst.SampleRate, inst.VoiceControls(),
//		host.WithLength(inst.SampleRate))
//	defer voice.Close()
//
//	pcm16, rate, _ := wavetable.CollectMono16(voice, 0)
//
// # Protocol
//
// Hosts that manage buffers themselves talk to the engine directly: grow
// the mix and frequency buffers for a block, write them, then call
// Generate. Buffers only grow, and the slices returned stay valid until the
// next growth:
//
//	mixes, _ := eng.MixesBuffer(h, 128)
//	freqs, _ := eng.FrequenciesBuffer(h, 128)
//	// fill mixes and freqs
//	out, _ := eng.Generate(h, 128)
package wavetable
