// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Recording operations
	OpRecordStart Op = "start recording"
	OpRecordStop  Op = "stop recording"
	OpRecordMark  Op = "take mark"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackResume Op = "resume playback"

	// Store operations
	OpStoreOpen  Op = "open timing store"
	OpStoreWrite Op = "write timing data"
	OpStoreClear Op = "clear timing data"

	// Script operations
	OpScriptExport Op = "export script"
	OpScriptImport Op = "import script"

	// Notifications
	OpNotify Op = "send notification"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
