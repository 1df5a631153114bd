package timing

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyActive is returned when a session is started while one
	// is already running for the same subject kind.
	ErrAlreadyActive = errors.New("session already active")

	// ErrNotActive is returned when pause/resume/stop-style calls reach
	// a session that is not in the required state.
	ErrNotActive = errors.New("no active session")

	// ErrNoTimingData is returned when playback starts on a subject
	// with an empty sequence.
	ErrNoTimingData = errors.New("no timing data for subject")

	// ErrStoreUnavailable wraps persistence failures. They never abort
	// an in-progress session; in-memory state stays authoritative.
	ErrStoreUnavailable = errors.New("timing store unavailable")
)

// Store persists timing sequences per subject. Implementations must
// serialize their own writes per subject; callers treat every method as
// potentially slow and never invoke them from a timing-critical path.
type Store interface {
	// GetSequence loads the full sequence for a subject. An unknown
	// subject yields an empty sequence, not an error.
	GetSequence(subjectID string) (*Sequence, error)

	// BatchSave replaces the subject's stored sequence wholesale.
	BatchSave(subjectID string, entries []Entry) error

	// UpdateDuration overwrites the stored duration of one entry.
	// Returns false if the subject/target pair is unknown.
	UpdateDuration(subjectID, targetID string, d time.Duration) (bool, error)

	// Clear removes the subject's sequence.
	Clear(subjectID string) error

	// TotalDuration returns the configured composite total for the
	// subject, with ok=false when none has been set.
	TotalDuration(subjectID string) (time.Duration, bool, error)

	// SetTotalDuration persists the composite total for the subject.
	SetTotalDuration(subjectID string, d time.Duration) error
}
