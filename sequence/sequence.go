// SPDX-License-Identifier: EPL-2.0

// Package sequence turns MIDI note events into a monophonic frequency curve.
//
// The most recently pressed key that is still held sounds. When every key is
// released the frequency holds and the gate closes.
package sequence

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultTuning is the frequency of A4 (key 69).
const DefaultTuning = 440

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrUnsorted          = errors.New("events are not in time order")
)

// Event is a MIDI message at an absolute sample index.
type Event struct {
	Sample  int
	Message midi.Message
}

type step struct {
	sample    int
	frequency float32
	gate      bool
}

// Sequence is a monophonic frequency and gate curve.
type Sequence struct {
	steps   []step
	length  int
	tuning  float32
	channel int // -1 accepts every channel
}

type Option func(*Sequence)

// WithChannel keeps only messages on channel ch (0-15).
func WithChannel(ch uint8) Option {
	return func(s *Sequence) { s.channel = int(ch) }
}

// WithTuning sets the frequency of A4.
func WithTuning(a4 float32) Option {
	return func(s *Sequence) { s.tuning = a4 }
}

// FromEvents builds a sequence from events in ascending sample order.
// Messages other than note on and note off are ignored.
func FromEvents(events []Event, opts ...Option) (*Sequence, error) {
	s := &Sequence{tuning: DefaultTuning, channel: -1}
	for _, opt := range opts {
		opt(s)
	}

	var held []uint8
	for i, ev := range events {
		if i > 0 && ev.Sample < events[i-1].Sample {
			return nil, fmt.Errorf("%w: event %d at sample %d follows sample %d",
				ErrUnsorted, i, ev.Sample, events[i-1].Sample)
		}

		var channel, key, velocity uint8
		switch {
		case ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
			if !s.accepts(channel) {
				continue
			}
			held = append(slices.DeleteFunc(held, func(k uint8) bool { return k == key }), key)
		case ev.Message.GetNoteOn(&channel, &key, &velocity), ev.Message.GetNoteOff(&channel, &key, &velocity):
			if !s.accepts(channel) {
				continue
			}
			held = slices.DeleteFunc(held, func(k uint8) bool { return k == key })
		default:
			continue
		}

		s.push(ev.Sample, held)
		s.length = max(s.length, ev.Sample)
	}

	return s, nil
}

// FromSMF reads a Standard MIDI File and places its notes at sampleRate.
// Every track is merged.
func FromSMF(r io.Reader, sampleRate int, opts ...Option) (*Sequence, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	var events []Event
	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		events = append(events, Event{
			Sample:  int(te.AbsMicroSeconds * int64(sampleRate) / 1_000_000),
			Message: midi.Message(te.Message),
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("reading SMF: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Sample < events[j].Sample })

	return FromEvents(events, opts...)
}

func (s *Sequence) accepts(channel uint8) bool {
	return s.channel < 0 || int(channel) == s.channel
}

func (s *Sequence) push(sample int, held []uint8) {
	st := step{sample: sample}
	if len(held) > 0 {
		st.frequency = s.KeyFrequency(held[len(held)-1])
		st.gate = true
	} else if n := len(s.steps); n > 0 {
		st.frequency = s.steps[n-1].frequency
	} else {
		// a release before any press
		return
	}

	// events at the same sample collapse into the last one
	if n := len(s.steps); n > 0 && s.steps[n-1].sample == sample {
		s.steps[n-1] = st
		return
	}
	s.steps = append(s.steps, st)
}

// KeyFrequency is the equal-tempered frequency of a MIDI key.
func (s *Sequence) KeyFrequency(key uint8) float32 {
	return s.tuning * float32(math.Exp2((float64(key)-69)/12))
}

// Length is the sample index of the last note event.
func (s *Sequence) Length() int { return s.length }

// At returns the frequency sounding at sample. Before the first note it is
// the first note's frequency; without notes it is the A4 tuning.
func (s *Sequence) At(sample int) float32 {
	if len(s.steps) == 0 {
		return s.tuning
	}

	return s.steps[s.index(sample)].frequency
}

// Gate returns a curve that is 1 while a key is held and 0 otherwise.
func (s *Sequence) Gate() Gate { return Gate{s} }

// index finds the last step at or before sample, or 0.
func (s *Sequence) index(sample int) int {
	i := sort.Search(len(s.steps), func(i int) bool { return s.steps[i].sample > sample })

	return max(i-1, 0)
}

type Gate struct {
	s *Sequence
}

func (g Gate) At(sample int) float32 {
	steps := g.s.steps
	if len(steps) == 0 || sample < steps[0].sample {
		return 0
	}
	if steps[g.s.index(sample)].gate {
		return 1
	}

	return 0
}
