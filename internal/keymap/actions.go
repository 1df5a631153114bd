// Package keymap defines key bindings and action dispatch for the
// stage monitor.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionFocusSubject Action = "focus_subject"
	ActionCycleMode    Action = "cycle_mode"

	// Recording actions
	ActionToggleRecord Action = "toggle_record"
	ActionMark         Action = "mark"
	ActionLoopMarker   Action = "loop_marker"

	// Playback actions
	ActionPlay      Action = "play"
	ActionPlayPause Action = "play_pause"
	ActionOverride  Action = "override"
	ActionStop      Action = "stop"
)
