package mqtt

import (
	"fmt"
	"sync"

	coremetrics "github.com/nemtools/bessim/core/metrics"
)

// MockPublisher records runs in memory for tests.
type MockPublisher struct {
	Runs    []coremetrics.RunRecord
	FailIDs map[string]bool
	mu      sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailIDs: make(map[string]bool)}
}

// RecordRun stores the record or returns an error if configured to fail.
func (m *MockPublisher) RecordRun(rec coremetrics.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[rec.RunID] {
		return fmt.Errorf("publish failed")
	}
	m.Runs = append(m.Runs, rec)
	return nil
}
