// SPDX-License-Identifier: EPL-2.0

package host

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavetable/audio"
	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/table"
	"github.com/viterin/vek/vek32"
)

// DefaultFrameSize is the number of samples rendered per engine call.
const DefaultFrameSize = 128

var (
	ErrInvalidVoice = errors.New("invalid voice options")
	ErrVoiceClosed  = errors.New("voice is closed")
)

// Controls drive a voice. Missing curves read as 0, except Frequency which
// defaults to table.DefaultFrequency and Amplitude which defaults to 1.
// Blend[0] is never read: dimension 0 seeds the accumulator.
type Controls struct {
	Frequency Curve
	Select    []Curve
	Blend     []Curve
	Amplitude Curve
}

// Voice renders one handle frame by frame and serves the result as a mono
// audio.Source.
type Voice struct {
	eng        *engine.Engine
	handle     engine.HandleID
	dimensions int
	sampleRate int

	frameSize int
	length    int // total samples; 0 is unbounded
	gain      float32
	controls  Controls

	pos     int       // samples rendered so far
	pending []float32 // rendered but not yet read
	amp     []float32
	closed  bool
}

var _ audio.Source = (*Voice)(nil)

type VoiceOption func(*Voice)

// WithFrameSize sets the samples per engine call.
func WithFrameSize(n int) VoiceOption {
	return func(v *Voice) { v.frameSize = n }
}

// WithLength ends the stream after n samples.
func WithLength(n int) VoiceOption {
	return func(v *Voice) { v.length = n }
}

// WithGain scales every rendered sample.
func WithGain(g float32) VoiceOption {
	return func(v *Voice) { v.gain = g }
}

// NewVoice binds a new handle to tableID.
func NewVoice(eng *engine.Engine, tableID engine.TableID, sampleRate int, controls Controls, opts ...VoiceOption) (*Voice, error) {
	v := &Voice{
		eng:        eng,
		sampleRate: sampleRate,
		frameSize:  DefaultFrameSize,
		gain:       1,
		controls:   controls,
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.sampleRate <= 0 || v.frameSize <= 0 || v.length < 0 {
		return nil, fmt.Errorf("%w: sample rate %d, frame size %d, length %d",
			ErrInvalidVoice, v.sampleRate, v.frameSize, v.length)
	}
	if v.controls.Frequency == nil {
		v.controls.Frequency = Constant(table.DefaultFrequency)
	}

	tbl, err := eng.Table(tableID)
	if err != nil {
		return nil, err
	}
	v.dimensions = tbl.Settings().DimensionCount

	if len(controls.Select) > v.dimensions || len(controls.Blend) > v.dimensions {
		return nil, fmt.Errorf("%w: controls for %d/%d dimensions, table has %d",
			ErrInvalidVoice, len(controls.Select), len(controls.Blend), v.dimensions)
	}

	if v.handle, err = eng.CreateHandle(tableID); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Voice) Handle() engine.HandleID { return v.handle }

// Position is the number of samples rendered so far.
func (v *Voice) Position() int { return v.pos }

func (v *Voice) SampleRate() int { return v.sampleRate }
func (v *Voice) Channels() int   { return 1 }
func (v *Voice) BufSize() int    { return v.frameSize }

// Close destroys the voice's handle.
func (v *Voice) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	return v.eng.DestroyHandle(v.handle)
}

// RenderFrame renders the next frame and returns it. The slice is reused by
// the next call. At the end of a bounded voice it returns io.EOF.
func (v *Voice) RenderFrame() ([]float32, error) {
	if v.closed {
		return nil, ErrVoiceClosed
	}

	n := v.frameSize
	if v.length > 0 {
		n = min(n, v.length-v.pos)
		if n <= 0 {
			return nil, io.EOF
		}
	}

	if err := v.writeControls(n); err != nil {
		return nil, err
	}

	out, err := v.eng.Generate(v.handle, n)
	if err != nil {
		return nil, err
	}

	if v.controls.Amplitude != nil {
		v.amp = grow(v.amp, n)
		for i := range n {
			v.amp[i] = v.controls.Amplitude.At(v.pos + i)
		}
		vek32.Mul_Inplace(out, v.amp[:n])
	}
	if v.gain != 1 {
		vek32.MulNumber_Inplace(out, v.gain)
	}

	v.pos += n

	return out, nil
}

// writeControls fills the engine's mix and frequency buffers for n samples
// starting at the current position.
func (v *Voice) writeControls(n int) error {
	mixes, err := v.eng.MixesBuffer(v.handle, n)
	if err != nil {
		return err
	}
	freqs, err := v.eng.FrequenciesBuffer(v.handle, n)
	if err != nil {
		return err
	}

	for i := range n {
		freqs[i] = v.controls.Frequency.At(v.pos + i)
	}

	for d := range v.dimensions {
		sel := mixes[d*2*n : d*2*n+n]
		blend := mixes[d*2*n+n : (d+1)*2*n]

		fillClamped(sel, curveAt(v.controls.Select, d), v.pos)
		if d == 0 {
			clear(blend)
			continue
		}
		fillClamped(blend, curveAt(v.controls.Blend, d), v.pos)
	}

	return nil
}

func (v *Voice) ReadSamples(dst []float32) (int, error) {
	written := 0
	for written < len(dst) {
		if len(v.pending) == 0 {
			frame, err := v.RenderFrame()
			if err != nil {
				return written, err
			}
			v.pending = frame
		}

		n := copy(dst[written:], v.pending)
		v.pending = v.pending[n:]
		written += n
	}

	return written, nil
}

func curveAt(curves []Curve, d int) Curve {
	if d < len(curves) {
		return curves[d]
	}
	return nil
}

func fillClamped(dst []float32, c Curve, start int) {
	if c == nil {
		clear(dst)
		return
	}
	for i := range dst {
		dst[i] = clamp01(c.At(start + i))
	}
}

func grow(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}
