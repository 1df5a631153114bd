// Package recording captures operator dwell times into an ordered
// timing sequence. Recording is advisory instrumentation: calls made in
// the wrong state degrade to no-ops instead of failing playback or
// navigation.
package recording

import (
	"errors"
	"sync"
	"time"

	"github.com/avrillon/encore/internal/timing"
)

// ErrNothingRecorded is returned by Stop when no marks were captured.
var ErrNothingRecorded = errors.New("nothing recorded")

// Session captures dwell marks for one subject at a time.
type Session struct {
	mu    sync.Mutex
	store timing.Store
	now   func() time.Time

	subjectID  string
	recording  bool
	startedAt  time.Time
	lastMarkAt time.Time
	entries    []timing.Entry

	onStateChanged func(recording bool)
}

// NewSession creates a recording session backed by store.
func NewSession(store timing.Store) *Session {
	return &Session{
		store: store,
		now:   time.Now,
	}
}

// SetOnStateChanged registers a callback fired whenever recording
// starts or stops. The callback must not block.
func (s *Session) SetOnStateChanged(fn func(recording bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChanged = fn
}

// IsRecording reports whether a recording is in progress.
func (s *Session) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// SubjectID returns the subject being recorded, or "" when idle.
func (s *Session) SubjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recording {
		return ""
	}
	return s.subjectID
}

// Start begins a fresh recording for the subject. Any previously
// persisted sequence is cleared up front: a new recording always
// replaces the old one.
func (s *Session) Start(subjectID string) error {
	s.mu.Lock()
	if s.recording {
		s.mu.Unlock()
		return timing.ErrAlreadyActive
	}

	s.subjectID = subjectID
	s.recording = true
	s.startedAt = s.now()
	s.lastMarkAt = time.Time{}
	s.entries = nil
	fn := s.onStateChanged
	s.mu.Unlock()

	// Clearing may fail; Stop's batch save replaces the sequence
	// wholesale anyway, so a failure here is not fatal.
	_ = s.store.Clear(subjectID)

	if fn != nil {
		fn(true)
	}
	return nil
}

// Mark records the dwell that just ended and starts timing the next
// one. The very first mark carries a zero duration: it establishes the
// starting frame, and dwell is counted between marks. Returns the
// recorded duration and whether a mark was actually taken (false when
// not recording).
func (s *Session) Mark(targetID string, positionHint float64) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return 0, false
	}

	now := s.now()
	var d time.Duration
	if !s.lastMarkAt.IsZero() {
		d = now.Sub(s.lastMarkAt)
	}
	s.lastMarkAt = now

	entry := timing.Entry{
		TargetID:      targetID,
		Duration:      d,
		SequenceOrder: len(s.entries),
		PositionHint:  positionHint,
		RecordedAt:    now,
	}
	if i := s.indexOf(targetID); i >= 0 {
		entry.SequenceOrder = s.entries[i].SequenceOrder
		s.entries[i] = entry
	} else {
		s.entries = append(s.entries, entry)
	}

	return d, true
}

// SetLoopMarker flags the most recent mark for targetID as a loop
// point. No-op when not recording or the target was never marked.
func (s *Session) SetLoopMarker(targetID string, marker int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return false
	}
	i := s.indexOf(targetID)
	if i < 0 {
		return false
	}
	s.entries[i].LoopMarker = marker
	return true
}

// Stop persists the captured entries in one batch and clears transient
// state. No trailing mark is taken implicitly; callers wanting the last
// dwell counted must Mark before stopping.
func (s *Session) Stop() (int, error) {
	s.mu.Lock()
	if !s.recording {
		s.mu.Unlock()
		return 0, timing.ErrNotActive
	}

	subjectID := s.subjectID
	entries := s.entries
	s.reset()
	fn := s.onStateChanged
	s.mu.Unlock()

	if fn != nil {
		fn(false)
	}

	if len(entries) == 0 {
		return 0, ErrNothingRecorded
	}

	if err := s.store.BatchSave(subjectID, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Abort discards the in-progress recording without persisting.
func (s *Session) Abort() {
	s.mu.Lock()
	if !s.recording {
		s.mu.Unlock()
		return
	}
	s.reset()
	fn := s.onStateChanged
	s.mu.Unlock()

	if fn != nil {
		fn(false)
	}
}

// Entries returns a copy of the marks captured so far.
func (s *Session) Entries() []timing.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]timing.Entry(nil), s.entries...)
}

func (s *Session) reset() {
	s.recording = false
	s.subjectID = ""
	s.startedAt = time.Time{}
	s.lastMarkAt = time.Time{}
	s.entries = nil
}

func (s *Session) indexOf(targetID string) int {
	for i := range s.entries {
		if s.entries[i].TargetID == targetID {
			return i
		}
	}
	return -1
}
