// SPDX-License-Identifier: EPL-2.0

// Command wtrender renders a wavetable instrument to a 16-bit WAV file.
//
//	wtrender -config pad.yaml -midi melody.mid -o out.wav
//
// Without -config the built-in two-dimension demo instrument is used.
// Without -midi the instrument plays its configured frequency for -duration.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ik5/wavetable"
	"github.com/ik5/wavetable/analysis"
	"github.com/ik5/wavetable/config"
	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/formats/wav"
	"github.com/ik5/wavetable/host"
	"github.com/ik5/wavetable/sequence"
)

func main() {
	configPath := flag.String("config", "", "Instrument YAML file. Defaults to the built-in demo instrument.")
	midiPath := flag.String("midi", "", "Standard MIDI file to play. Overrides -freq.")
	outPath := flag.String("o", "out.wav", "Output WAV file.")
	duration := flag.Float64("duration", 2, "Seconds to render. With -midi, the default is the length of the file.")
	freq := flag.Float64("freq", 0, "Override the instrument frequency in Hz.")
	gain := flag.Float64("gain", 0.8, "Output gain.")
	verbose := flag.Bool("v", false, "Log engine probes and analysis to stderr.")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("wtrender: ")

	durationSet := false
	flag.Visit(func(f *flag.Flag) { durationSet = durationSet || f.Name == "duration" })

	if err := run(*configPath, *midiPath, *outPath, *duration, durationSet, float32(*freq), float32(*gain), *verbose); err != nil {
		log.Fatal(err)
	}
}

func loadInstrument(path string) (*config.Instrument, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadMelody(path string, sampleRate int) (*sequence.Sequence, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sequence.FromSMF(f, sampleRate)
}

func run(configPath, midiPath, outPath string, seconds float64, secondsSet bool, freq, gain float32, verbose bool) error {
	inst, err := loadInstrument(configPath)
	if err != nil {
		return err
	}
	if freq > 0 {
		inst.Controls.Frequency = freq
	}

	melody, err := loadMelody(midiPath, inst.SampleRate)
	if err != nil {
		return err
	}

	length := int(seconds * float64(inst.SampleRate))
	if melody != nil && !secondsSet {
		// leave a frame after the last release
		length = melody.Length() + inst.FrameSize
	}
	if length <= 0 {
		return errors.New("nothing to render: duration must be positive")
	}

	var opts []engine.Option
	if verbose {
		opts = append(opts, engine.WithProbe(engine.LogProbe{Logger: log.Default()}))
	}
	eng := engine.New(opts...)

	voice, err := inst.NewVoice(eng, melody, host.WithLength(length), host.WithGain(gain))
	if err != nil {
		return err
	}
	defer voice.Close()

	pcm16, rate, err := wavetable.CollectMono16(voice, 0)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := wav.Write16(out, rate, 1, pcm16); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	samples := make([]float32, len(pcm16))
	for i, s := range pcm16 {
		samples[i] = float32(s) / 32768
	}
	peak, rms := analysis.Peak(samples), analysis.RMS(samples)
	eng.Debug2(0, peak, rms)

	dominant, err := analysis.DominantFrequency(samples, rate)
	if err == nil {
		eng.Debug1(1, float32(dominant))
	}

	log.Printf("wrote %s: %d samples at %d Hz, peak %.3f, rms %.3f", outPath, len(pcm16), rate, peak, rms)

	return nil
}
