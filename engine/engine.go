// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/wavetable/table"
)

// TableID identifies a table owned by an Engine.
type TableID uint64

// HandleID identifies a handle owned by an Engine.
type HandleID uint64

type handleEntry struct {
	handle *table.Handle
	table  TableID
}

// Engine owns tables and handles and hands out ids for them. Hosts never
// hold the objects themselves, only ids and the buffers returned for
// zero-copy I/O. Buffers must be fetched again after every call that may
// grow them.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	tables  map[TableID]*table.Table
	handles map[HandleID]*handleEntry

	nextTable  TableID
	nextHandle HandleID

	probe Probe
}

// Option configures an Engine.
type Option func(*Engine)

// WithProbe sets the probe that receives Debug1..Debug4 values.
func WithProbe(p Probe) Option {
	return func(e *Engine) {
		if p != nil {
			e.probe = p
		}
	}
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		tables:  make(map[TableID]*table.Table),
		handles: make(map[HandleID]*handleEntry),
		probe:   nopProbe{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// CreateTable allocates a zero-filled table.
func (e *Engine) CreateTable(waveformsPerDimension, dimensionCount, waveformLength int, baseFrequency float32) (TableID, error) {
	tbl, err := table.New(table.Settings{
		WaveformLength:        waveformLength,
		DimensionCount:        dimensionCount,
		WaveformsPerDimension: waveformsPerDimension,
		BaseFrequency:         baseFrequency,
	})
	if err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	e.nextTable++
	e.tables[e.nextTable] = tbl

	return e.nextTable, nil
}

// Table returns the table behind id.
func (e *Engine) Table(id TableID) (*table.Table, error) {
	tbl, ok := e.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTable, id)
	}

	return tbl, nil
}

// TableSamples returns the table storage for the host to write waveforms into.
func (e *Engine) TableSamples(id TableID) ([]float32, error) {
	tbl, err := e.Table(id)
	if err != nil {
		return nil, err
	}

	return tbl.Samples(), nil
}

// DestroyTable releases a table. Handles still bound to it fail with
// ErrTableDestroyed from then on.
func (e *Engine) DestroyTable(id TableID) error {
	if _, ok := e.tables[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTable, id)
	}

	delete(e.tables, id)
	for _, entry := range e.handles {
		if entry.table == id {
			entry.handle = nil
		}
	}

	return nil
}

// CreateHandle binds a new voice with phase 0 to a table.
func (e *Engine) CreateHandle(tableID TableID) (HandleID, error) {
	tbl, err := e.Table(tableID)
	if err != nil {
		return 0, fmt.Errorf("create handle: %w", err)
	}

	e.nextHandle++
	e.handles[e.nextHandle] = &handleEntry{
		handle: table.NewHandle(tbl),
		table:  tableID,
	}

	return e.nextHandle, nil
}

// Handle returns the handle behind id.
func (e *Engine) Handle(id HandleID) (*table.Handle, error) {
	entry, ok := e.handles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}
	if entry.handle == nil {
		return nil, fmt.Errorf("%w: handle %d, table %d", ErrTableDestroyed, id, entry.table)
	}

	return entry.handle, nil
}

// DestroyHandle releases a handle and its buffers.
func (e *Engine) DestroyHandle(id HandleID) error {
	if _, ok := e.handles[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}

	delete(e.handles, id)

	return nil
}

// MixesBuffer grows the handle's mix input to sampleCount samples and
// returns it for the host to write. See table.Handle.MixesBuffer for the layout.
func (e *Engine) MixesBuffer(id HandleID, sampleCount int) ([]float32, error) {
	h, err := e.Handle(id)
	if err != nil {
		return nil, err
	}

	return h.MixesBuffer(sampleCount), nil
}

// FrequenciesBuffer grows the handle's frequency input to sampleCount samples
// and returns it for the host to write.
func (e *Engine) FrequenciesBuffer(id HandleID, sampleCount int) ([]float32, error) {
	h, err := e.Handle(id)
	if err != nil {
		return nil, err
	}

	return h.FrequenciesBuffer(sampleCount), nil
}

// Generate produces sampleCount samples on a handle. The returned slice is
// the handle's output buffer; it is valid until the next call on the handle.
func (e *Engine) Generate(id HandleID, sampleCount int) ([]float32, error) {
	h, err := e.Handle(id)
	if err != nil {
		return nil, err
	}

	out, err := h.Generate(sampleCount)
	if err != nil {
		return out, fmt.Errorf("handle %d: %w", id, err)
	}

	return out, nil
}

// Stats reports the number of live tables and handles. Handles whose
// table was destroyed are counted until they are destroyed themselves.
func (e *Engine) Stats() (tables, handles int) {
	return len(e.tables), len(e.handles)
}

// Debug1 forwards one value to the probe.
func (e *Engine) Debug1(id int32, v1 float32) { e.probe.Probe(id, v1) }

// Debug2 forwards two values to the probe.
func (e *Engine) Debug2(id int32, v1, v2 float32) { e.probe.Probe(id, v1, v2) }

// Debug3 forwards three values to the probe.
func (e *Engine) Debug3(id int32, v1, v2, v3 float32) { e.probe.Probe(id, v1, v2, v3) }

// Debug4 forwards four values to the probe.
func (e *Engine) Debug4(id int32, v1, v2, v3, v4 float32) { e.probe.Probe(id, v1, v2, v3, v4) }
