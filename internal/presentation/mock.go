package presentation

import "sync"

// Jump records one JumpTo call on the mock.
type Jump struct {
	TargetID     string
	PositionHint float64
	Animated     bool
}

// Mock is a test double for Port.
type Mock struct {
	mu     sync.Mutex
	jumps  []Jump
	extent float64
}

// NewMock creates a new mock port for testing.
func NewMock() *Mock {
	return &Mock{extent: 1000}
}

func (m *Mock) JumpTo(targetID string, positionHint float64, animated bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jumps = append(m.jumps, Jump{TargetID: targetID, PositionHint: positionHint, Animated: animated})
}

func (m *Mock) ScrollableExtent() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extent
}

// Test helpers

func (m *Mock) SetExtent(extent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extent = extent
}

func (m *Mock) Jumps() []Jump {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Jump(nil), m.jumps...)
}

func (m *Mock) JumpCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jumps)
}

func (m *Mock) LastJump() *Jump {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.jumps) == 0 {
		return nil
	}
	j := m.jumps[len(m.jumps)-1]
	return &j
}

// Verify Mock implements Port at compile time.
var _ Port = (*Mock)(nil)
