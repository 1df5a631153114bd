// internal/playback/state.go
package playback

// State represents the playback state machine.
//
// The state machine has four states with the following valid transitions:
//
//	┌──────────┐      start      ┌──────────┐
//	│   Idle   │ ───────────────▶│  Playing │◀─────────┐
//	└──────────┘                 └──────────┘          │
//	     ▲                            │ │              │ resume
//	     │ stop                 pause │ │ rounds done  │
//	     │                            ▼ │              │
//	     │                       ┌──────────┐     ┌──────────┐
//	     ├───────────────────────│ Completed│     │  Paused  │
//	     │            stop       └──────────┘     └──────────┘
//	     │                                             │
//	     └─────────────────────────────────────────────┘
//	                          stop
//
// Valid transitions:
//   - Idle      → Playing   (via Start)
//   - Playing   → Paused    (via Pause)
//   - Paused    → Playing   (via Resume)
//   - Playing   → Completed (loop policy says stop)
//   - any state → Idle      (via Stop)
//
// Invalid transitions return a typed error and leave the machine
// unchanged; Stop is idempotent from any state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateCompleted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a schedule is live (Playing or Paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == StatePlaying
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == StatePaused
}
