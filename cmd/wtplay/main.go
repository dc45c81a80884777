// SPDX-License-Identifier: EPL-2.0

// Command wtplay plays a wavetable instrument on the default audio device.
//
//	wtplay -config pad.yaml -duration 5
//
// Interrupt stops playback.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/wavetable/config"
	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/host"
	"github.com/ik5/wavetable/player"
	"github.com/ik5/wavetable/sequence"
)

func main() {
	configPath := flag.String("config", "", "Instrument YAML file. Defaults to the built-in demo instrument.")
	midiPath := flag.String("midi", "", "Standard MIDI file to play. Overrides -freq.")
	duration := flag.Duration("duration", 3*time.Second, "How long to play. Zero plays a MIDI file to its end.")
	freq := flag.Float64("freq", 0, "Override the instrument frequency in Hz.")
	gain := flag.Float64("gain", 0.5, "Output gain.")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("wtplay: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath, *midiPath, *duration, float32(*freq), float32(*gain)); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configPath, midiPath string, duration time.Duration, freq, gain float32) error {
	inst := config.Default()
	if configPath != "" {
		var err error
		if inst, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if freq > 0 {
		inst.Controls.Frequency = freq
	}

	opts := []host.VoiceOption{host.WithGain(gain)}

	var melody *sequence.Sequence
	if midiPath != "" {
		f, err := os.Open(midiPath)
		if err != nil {
			return err
		}
		melody, err = sequence.FromSMF(f, inst.SampleRate)
		f.Close()
		if err != nil {
			return err
		}
		if duration == 0 {
			opts = append(opts, host.WithLength(melody.Length()+inst.FrameSize))
		}
	}
	if duration == 0 && melody == nil {
		return errors.New("a zero duration needs -midi")
	}

	voice, err := inst.NewVoice(engine.New(), melody, opts...)
	if err != nil {
		return err
	}
	defer voice.Close()

	log.Printf("playing at %d Hz, %d samples per frame", inst.SampleRate, inst.FrameSize)

	err = player.Play(ctx, voice, duration)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
