package mqtt

import (
	"fmt"
	"sync"
)

// MockPublisher records published forecasts for tests.
type MockPublisher struct {
	mu        sync.Mutex
	Published map[string][]float64
	Fail      bool
	Closed    bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Published: make(map[string][]float64)}
}

// PublishForecast records the forecast or returns an error if configured to fail.
func (m *MockPublisher) PublishForecast(runID, batteryID string, values []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	m.Published[batteryID] = cp
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
