// SPDX-License-Identifier: EPL-2.0

package config

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/ik5/wavetable/audio"
	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/host"
	"github.com/ik5/wavetable/sequence"
)

func TestNewVoice(t *testing.T) {
	t.Parallel()

	eng := engine.New()
	v, err := Default().NewVoice(eng, nil, host.WithLength(1000))
	if err != nil {
		t.Fatalf("NewVoice() error = %v", err)
	}
	defer v.Close()

	if v.BufSize() != host.DefaultFrameSize {
		t.Errorf("BufSize() = %d, want %d", v.BufSize(), host.DefaultFrameSize)
	}

	got, err := audio.ReadAll(v, 0)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 1000 {
		t.Errorf("len = %d, want 1000", len(got))
	}
}

func TestNewVoice_MelodyGates(t *testing.T) {
	t.Parallel()

	melody, err := sequence.FromEvents([]sequence.Event{
		{Sample: 0, Message: midi.NoteOn(0, 57, 100)},
		{Sample: 256, Message: midi.NoteOff(0, 57)},
	})
	if err != nil {
		t.Fatalf("FromEvents() error = %v", err)
	}

	eng := engine.New()
	v, err := Default().NewVoice(eng, melody, host.WithLength(512))
	if err != nil {
		t.Fatalf("NewVoice() error = %v", err)
	}
	defer v.Close()

	got, err := audio.ReadAll(v, 0)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	var sounding bool
	for _, s := range got[:256] {
		if s != 0 {
			sounding = true
			break
		}
	}
	if !sounding {
		t.Error("voice is silent while the note is held")
	}
	for i, s := range got[256:] {
		if s != 0 {
			t.Fatalf("sample %d = %v after note off, want 0", 256+i, s)
		}
	}
}
