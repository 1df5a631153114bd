package playback

import "time"

// StateChange is emitted when the playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// Progress is emitted once per plan step, when its countdown begins.
//
// Emitted by the scheduling loop right after the presentation layer has
// been asked to move; Remaining carries the step's full dwell time.
// Callers wanting a live countdown should poll Session.Remaining from
// their own tick instead of expecting repeated Progress events.
type Progress struct {
	CurrentIndex int
	TotalCount   int
	Remaining    time.Duration
	TargetID     string
	Round        int
}

// Completed is emitted when the loop policy ends playback. The display
// has already been rested on the first frame by a direct jump.
type Completed struct {
	SubjectID string
	Rounds    int
}

// ErrorEvent is emitted for background failures that must not abort
// playback, such as a dropped duration write.
type ErrorEvent struct {
	Operation string // e.g., "update duration"
	Err       error
}
