package timing

import (
	"sync"
	"time"
)

// MockStore is an in-memory test double for Store.
type MockStore struct {
	mu        sync.Mutex
	sequences map[string][]Entry
	totals    map[string]time.Duration

	updateCalls []UpdateCall
	failAll     error
}

// UpdateCall records one UpdateDuration invocation.
type UpdateCall struct {
	SubjectID string
	TargetID  string
	Duration  time.Duration
}

// NewMockStore creates a new mock store for testing.
func NewMockStore() *MockStore {
	return &MockStore{
		sequences: make(map[string][]Entry),
		totals:    make(map[string]time.Duration),
	}
}

func (m *MockStore) GetSequence(subjectID string) (*Sequence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	return NewSequence(m.sequences[subjectID]...), nil
}

func (m *MockStore) BatchSave(subjectID string, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	m.sequences[subjectID] = append([]Entry(nil), entries...)
	return nil
}

func (m *MockStore) UpdateDuration(subjectID, targetID string, d time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return false, m.failAll
	}
	m.updateCalls = append(m.updateCalls, UpdateCall{SubjectID: subjectID, TargetID: targetID, Duration: d})
	for i := range m.sequences[subjectID] {
		if m.sequences[subjectID][i].TargetID == targetID {
			m.sequences[subjectID][i].Duration = d
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) Clear(subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	delete(m.sequences, subjectID)
	return nil
}

func (m *MockStore) TotalDuration(subjectID string) (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return 0, false, m.failAll
	}
	d, ok := m.totals[subjectID]
	return d, ok, nil
}

func (m *MockStore) SetTotalDuration(subjectID string, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	m.totals[subjectID] = d
	return nil
}

// Test helpers

// SetSequence seeds the stored sequence for a subject.
func (m *MockStore) SetSequence(subjectID string, entries ...Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequences[subjectID] = append([]Entry(nil), entries...)
}

// SetFailAll makes every call fail with err (nil to restore).
func (m *MockStore) SetFailAll(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = err
}

// UpdateCalls returns all recorded UpdateDuration calls.
func (m *MockStore) UpdateCalls() []UpdateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]UpdateCall(nil), m.updateCalls...)
}

// StoredTotal returns the persisted total for a subject.
func (m *MockStore) StoredTotal(subjectID string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.totals[subjectID]
	return d, ok
}

// Verify MockStore implements Store at compile time.
var _ Store = (*MockStore)(nil)
