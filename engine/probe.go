// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"log"
	"strconv"
	"strings"
)

// Probe receives diagnostic values from the engine. It must not retain
// values after returning.
type Probe interface {
	Probe(id int32, values ...float32)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(id int32, values ...float32)

// Probe calls f.
func (f ProbeFunc) Probe(id int32, values ...float32) { f(id, values...) }

type nopProbe struct{}

func (nopProbe) Probe(int32, ...float32) {}

// LogProbe prints probes as "[id]: v1 v2 ..." on a logger.
type LogProbe struct {
	Logger *log.Logger
}

// Probe implements Probe.
func (p LogProbe) Probe(id int32, values ...float32) {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(strconv.FormatInt(int64(id), 10))
	b.WriteString("]:")
	for _, v := range values {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}

	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Print(b.String())
}
