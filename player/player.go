// SPDX-License-Identifier: EPL-2.0

// Package player plays an audio.Source on the system audio device.
//
// The device is opened once per process at the sample rate of the first
// source played; later sources must use the same rate.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/wavetable/audio"
)

const pollInterval = 10 * time.Millisecond

var ErrSampleRateMismatch = errors.New("device already open at another sample rate")

var device struct {
	once       sync.Once
	ctx        *oto.Context
	sampleRate int
	err        error
}

func open(sampleRate int) (*oto.Context, error) {
	device.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			device.err = fmt.Errorf("opening audio device: %w", err)
			return
		}
		<-ready

		device.ctx = ctx
		device.sampleRate = sampleRate
	})

	if device.err != nil {
		return nil, device.err
	}
	if device.sampleRate != sampleRate {
		return nil, fmt.Errorf("%w: device %d Hz, source %d Hz",
			ErrSampleRateMismatch, device.sampleRate, sampleRate)
	}

	return device.ctx, nil
}

// Play blocks until src ends, duration elapses or ctx is cancelled.
// Multi-channel sources are mixed down to mono. A duration of zero plays
// to the end of src.
func Play(ctx context.Context, src audio.Source, duration time.Duration) error {
	if src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	octx, err := open(src.SampleRate())
	if err != nil {
		return err
	}

	limit := int(duration.Seconds() * float64(src.SampleRate()))
	stream := NewStream(src, limit)

	p := octx.NewPlayer(stream)
	defer p.Close()
	p.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return stream.Err()
}
