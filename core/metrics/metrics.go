// Package metrics defines the sink contract for recording completed
// simulation runs. Implementations live under infra/metrics.
package metrics

import (
	"time"

	"github.com/nemtools/bessim/core/model"
)

// RunRecord is one completed simulation run handed to observability sinks.
type RunRecord struct {
	RunID       string
	Region      string
	Start       time.Time
	End         time.Time
	Summary     model.Summary
	Intervals   []model.IntervalRecord
	CompletedAt time.Time
}

// Sink records completed runs for observability purposes.
type Sink interface {
	RecordRun(rec RunRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error { return nil }

// MultiSink fans a run record out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(rec RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}
