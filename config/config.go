// SPDX-License-Identifier: EPL-2.0

// Package config reads YAML instrument definitions and builds them into an
// engine.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ik5/wavetable/engine"
	"github.com/ik5/wavetable/host"
	"github.com/ik5/wavetable/internal/shapes"
	"github.com/ik5/wavetable/loader"
	"github.com/ik5/wavetable/table"
)

const (
	DefaultSampleRate    = 44100
	DefaultBaseFrequency = 30

	// MaxDimensions bounds the controls an instrument exposes.
	MaxDimensions = 16
)

var ErrInvalidConfig = errors.New("invalid instrument config")

// Instrument describes a table and the controls that play it.
type Instrument struct {
	SampleRate     int         `yaml:"sample_rate"`
	FrameSize      int         `yaml:"frame_size"`
	BaseFrequency  float32     `yaml:"base_frequency"`
	WaveformLength int         `yaml:"waveform_length"`
	Normalize      bool        `yaml:"normalize"`
	Dimensions     []Dimension `yaml:"dimensions"`
	Controls       Controls    `yaml:"controls"`

	// dir resolves relative waveform files.
	dir string
}

type Dimension struct {
	Waveforms []Waveform `yaml:"waveforms"`
}

// Waveform names either a reference shape or an audio file.
type Waveform struct {
	Shape string `yaml:"shape,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Controls are the initial voice parameters. Blend[0] is ignored.
type Controls struct {
	Frequency float32   `yaml:"frequency"`
	Select    []float32 `yaml:"select"`
	Blend     []float32 `yaml:"blend"`
	LFO       *LFO      `yaml:"lfo,omitempty"`
}

// LFO modulates one select or blend factor with a [0, 1] triangle.
type LFO struct {
	Target    string  `yaml:"target"`
	Dimension int     `yaml:"dimension"`
	Rate      float32 `yaml:"rate"`
}

// Default is a two-dimension instrument of reference shapes with a 2 Hz LFO
// sweeping the first dimension.
func Default() *Instrument {
	inst := &Instrument{
		Dimensions: []Dimension{
			{Waveforms: []Waveform{{Shape: "sine"}, {Shape: "triangle"}}},
			{Waveforms: []Waveform{{Shape: "square"}, {Shape: "sawtooth"}}},
		},
		Controls: Controls{
			Select: []float32{0, 0},
			Blend:  []float32{0, 0},
			LFO:    &LFO{Target: "select", Dimension: 0, Rate: 2},
		},
	}
	inst.applyDefaults()

	return inst
}

// Load reads an instrument file. Relative waveform files resolve against
// the file's directory.
func Load(path string) (*Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	inst, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inst.dir = filepath.Dir(path)

	return inst, nil
}

// Parse decodes, defaults and validates an instrument. Unknown keys are
// rejected.
func Parse(data []byte) (*Instrument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var inst Instrument
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	inst.applyDefaults()
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	return &inst, nil
}

func (inst *Instrument) applyDefaults() {
	if inst.SampleRate == 0 {
		inst.SampleRate = DefaultSampleRate
	}
	if inst.FrameSize == 0 {
		inst.FrameSize = host.DefaultFrameSize
	}
	if inst.BaseFrequency == 0 {
		inst.BaseFrequency = DefaultBaseFrequency
	}
	if inst.WaveformLength == 0 && inst.BaseFrequency > 0 {
		inst.WaveformLength = int(math.Round(float64(inst.SampleRate) / float64(inst.BaseFrequency)))
	}
	if inst.Controls.Frequency == 0 {
		inst.Controls.Frequency = table.DefaultFrequency
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the instrument after defaults are applied.
func (inst *Instrument) Validate() error {
	switch {
	case inst.SampleRate <= 0:
		return invalid("sample_rate %d", inst.SampleRate)
	case inst.FrameSize <= 0:
		return invalid("frame_size %d", inst.FrameSize)
	case inst.Controls.Frequency <= 0:
		return invalid("controls.frequency %v", inst.Controls.Frequency)
	case len(inst.Dimensions) == 0:
		return invalid("no dimensions")
	case len(inst.Dimensions) > MaxDimensions:
		return invalid("%d dimensions, at most %d", len(inst.Dimensions), MaxDimensions)
	}

	if err := inst.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for d, dim := range inst.Dimensions {
		if len(dim.Waveforms) != len(inst.Dimensions[0].Waveforms) {
			return invalid("dimension %d has %d waveforms, dimension 0 has %d",
				d, len(dim.Waveforms), len(inst.Dimensions[0].Waveforms))
		}
		for w, wf := range dim.Waveforms {
			if (wf.Shape == "") == (wf.File == "") {
				return invalid("dimension %d waveform %d needs exactly one of shape or file", d, w)
			}
			if wf.Shape != "" {
				if _, err := shapes.ByName(wf.Shape, 2); err != nil {
					return fmt.Errorf("%w: dimension %d waveform %d: %w", ErrInvalidConfig, d, w, err)
				}
			}
		}
	}

	if err := checkFactors("select", inst.Controls.Select, len(inst.Dimensions)); err != nil {
		return err
	}
	if err := checkFactors("blend", inst.Controls.Blend, len(inst.Dimensions)); err != nil {
		return err
	}

	if lfo := inst.Controls.LFO; lfo != nil {
		switch {
		case lfo.Target != "select" && lfo.Target != "blend":
			return invalid("lfo.target %q, want select or blend", lfo.Target)
		case lfo.Dimension < 0 || lfo.Dimension >= len(inst.Dimensions):
			return invalid("lfo.dimension %d out of range", lfo.Dimension)
		case lfo.Target == "blend" && lfo.Dimension == 0:
			return invalid("lfo cannot target the blend of dimension 0")
		case lfo.Rate <= 0:
			return invalid("lfo.rate %v", lfo.Rate)
		}
	}

	return nil
}

func checkFactors(name string, values []float32, dims int) error {
	if len(values) > dims {
		return invalid("%s has %d values for %d dimensions", name, len(values), dims)
	}
	for i, v := range values {
		if !(v >= 0 && v <= 1) {
			return invalid("%s[%d] = %v outside [0, 1]", name, i, v)
		}
	}

	return nil
}

// Settings is the table geometry of the instrument.
func (inst *Instrument) Settings() table.Settings {
	wpd := 0
	if len(inst.Dimensions) > 0 {
		wpd = len(inst.Dimensions[0].Waveforms)
	}

	return table.Settings{
		WaveformLength:        inst.WaveformLength,
		DimensionCount:        len(inst.Dimensions),
		WaveformsPerDimension: wpd,
		BaseFrequency:         inst.BaseFrequency,
	}
}

// Build creates the instrument's table in eng and fills every waveform.
// The table is destroyed again if any waveform fails to load.
func (inst *Instrument) Build(eng *engine.Engine) (engine.TableID, error) {
	s := inst.Settings()
	id, err := eng.CreateTable(s.WaveformsPerDimension, s.DimensionCount, s.WaveformLength, s.BaseFrequency)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	tbl, err := eng.Table(id)
	if err != nil {
		return 0, err
	}

	for d, dim := range inst.Dimensions {
		for w, wf := range dim.Waveforms {
			if err := inst.fill(tbl, d, w, wf); err != nil {
				_ = eng.DestroyTable(id)
				return 0, fmt.Errorf("dimension %d waveform %d: %w", d, w, err)
			}
		}
	}

	return id, nil
}

func (inst *Instrument) fill(tbl *table.Table, d, w int, wf Waveform) error {
	if wf.File != "" {
		path := wf.File
		if !filepath.IsAbs(path) && inst.dir != "" {
			path = filepath.Join(inst.dir, path)
		}

		return loader.Load(tbl, d, w, path, loader.Options{Normalize: inst.Normalize})
	}

	dst, err := tbl.Waveform(d, w)
	if err != nil {
		return err
	}
	cycle, err := shapes.ByName(wf.Shape, len(dst))
	if err != nil {
		return err
	}
	copy(dst, cycle)

	return nil
}

// VoiceControls turns the configured controls into host curves.
func (inst *Instrument) VoiceControls() host.Controls {
	dims := len(inst.Dimensions)
	c := host.Controls{
		Frequency: host.Constant(inst.Controls.Frequency),
		Select:    make([]host.Curve, dims),
		Blend:     make([]host.Curve, dims),
	}

	for d := range dims {
		c.Select[d] = host.Constant(at(inst.Controls.Select, d))
		c.Blend[d] = host.Constant(at(inst.Controls.Blend, d))
	}

	if lfo := inst.Controls.LFO; lfo != nil {
		curve := host.LFO{Rate: lfo.Rate, SampleRate: inst.SampleRate}
		if lfo.Target == "blend" {
			c.Blend[lfo.Dimension] = curve
		} else {
			c.Select[lfo.Dimension] = curve
		}
	}

	return c
}

func at(values []float32, i int) float32 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
