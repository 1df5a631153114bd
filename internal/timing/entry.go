package timing

import "time"

// Entry is one recorded dwell interval: how long the show rests on a
// target before advancing past it.
type Entry struct {
	TargetID      string
	Duration      time.Duration // intended dwell before advancing, never negative
	SequenceOrder int           // 0-based position in the subject's sequence
	PositionHint  float64       // scroll offset for the presenter, opaque here
	LoopMarker    int           // >1 marks a deliberate pause point
	RecordedAt    time.Time
}

// IsLoopPoint returns true if the entry is a deliberate pause point
// rather than a pass-through frame.
func (e Entry) IsLoopPoint() bool {
	return e.LoopMarker > 1
}

// Sequence is the ordered collection of entries for one subject,
// deduplicated by target. SequenceOrder stays contiguous from 0 after
// every mutation.
type Sequence struct {
	entries []Entry
}

// NewSequence builds a sequence from entries, normalizing their order.
func NewSequence(entries ...Entry) *Sequence {
	s := &Sequence{entries: append([]Entry(nil), entries...)}
	s.reindex()
	return s
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	return len(s.entries)
}

// Entry returns a pointer to the entry at index, or nil if out of range.
func (s *Sequence) Entry(index int) *Entry {
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	return &s.entries[index]
}

// Entries returns a copy of all entries.
func (s *Sequence) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// IndexOf returns the index of the entry ending on targetID, or -1.
func (s *Sequence) IndexOf(targetID string) int {
	for i := range s.entries {
		if s.entries[i].TargetID == targetID {
			return i
		}
	}
	return -1
}

// Append adds an entry at the end of the sequence. If an entry for the
// same target already exists, its timing fields are overwritten in
// place instead (a sequence holds at most one entry per target).
func (s *Sequence) Append(e Entry) {
	if i := s.IndexOf(e.TargetID); i >= 0 {
		existing := &s.entries[i]
		existing.Duration = e.Duration
		existing.PositionHint = e.PositionHint
		existing.LoopMarker = e.LoopMarker
		existing.RecordedAt = e.RecordedAt
		return
	}
	e.SequenceOrder = len(s.entries)
	s.entries = append(s.entries, e)
}

// RemoveAt deletes the entry at index and re-indexes later entries.
func (s *Sequence) RemoveAt(index int) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.reindex()
	return true
}

// SetDuration overwrites the duration of the entry ending on targetID.
// Returns false if no such entry exists.
func (s *Sequence) SetDuration(targetID string, d time.Duration) bool {
	i := s.IndexOf(targetID)
	if i < 0 {
		return false
	}
	if d < 0 {
		d = 0
	}
	s.entries[i].Duration = d
	return true
}

// TotalDuration returns the sum of all entry durations.
func (s *Sequence) TotalDuration() time.Duration {
	var total time.Duration
	for i := range s.entries {
		total += s.entries[i].Duration
	}
	return total
}

// HasDurations returns true if at least one entry carries a recorded
// dwell time.
func (s *Sequence) HasDurations() bool {
	for i := range s.entries {
		if s.entries[i].Duration > 0 {
			return true
		}
	}
	return false
}

func (s *Sequence) reindex() {
	for i := range s.entries {
		s.entries[i].SequenceOrder = i
	}
}
