//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpRecordStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpRecordStart,
			err:      errors.New("already active"),
			expected: "Failed to start recording: already active",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no timing data"),
			expected: "Failed to start playback: no timing data",
		},
		{
			name:     "store operation",
			op:       OpStoreWrite,
			err:      errors.New("database locked"),
			expected: "Failed to write timing data: database locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpScriptImport,
			context:  "talk.yaml",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpScriptImport,
			context:  "talk.yaml",
			err:      errors.New("missing target"),
			expected: "Failed to import script 'talk.yaml': missing target",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpScriptImport,
			context:  "",
			err:      errors.New("missing target"),
			expected: "Failed to import script: missing target",
		},
		{
			name:     "playback with subject context",
			op:       OpPlaybackStart,
			context:  "talk-1",
			err:      errors.New("no timing data"),
			expected: "Failed to start playback 'talk-1': no timing data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpRecordStart, OpRecordStop, OpRecordMark,
		OpPlaybackStart, OpPlaybackPause, OpPlaybackResume,
		OpStoreOpen, OpStoreWrite, OpStoreClear,
		OpScriptExport, OpScriptImport,
		OpNotify,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
