// SPDX-License-Identifier: EPL-2.0

package config

import (
	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/host"
	"github.com/ik5/wavetable/sequence"
)

// NewVoice builds the instrument's table in eng and binds a voice to it at
// the instrument's frame size. A non-nil melody replaces the configured
// frequency and gates the output.
func (inst *Instrument) NewVoice(eng *engine.Engine, melody *sequence.Sequence, opts ...host.VoiceOption) (*host.Voice, error) {
	id, err := inst.Build(eng)
	if err != nil {
		return nil, err
	}

	controls := inst.VoiceControls()
	if melody != nil {
		controls.Frequency = melody
		controls.Amplitude = melody.Gate()
	}

	opts = append([]host.VoiceOption{host.WithFrameSize(inst.FrameSize)}, opts...)

	v, err := host.NewVoice(eng, id, inst.SampleRate, controls, opts...)
	if err != nil {
		_ = eng.DestroyTable(id)
		return nil, err
	}

	return v, nil
}
