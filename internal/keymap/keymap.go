package keymap

import "strings"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "recording", "playback"
}

// Bindings contains all key bindings for dispatch and help generation.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionFocusSubject, []string{"i"}, "Edit subject", "global"},
	{ActionCycleMode, []string{"tab"}, "Cycle mode", "global"},

	// Recording
	{ActionToggleRecord, []string{"r"}, "Record start/stop", "recording"},
	{ActionMark, []string{"m"}, "Mark", "recording"},
	{ActionLoopMarker, []string{"l"}, "Loop marker", "recording"},

	// Playback
	{ActionPlay, []string{"enter"}, "Play", "playback"},
	{ActionPlayPause, []string{" "}, "Pause/resume", "playback"},
	{ActionOverride, []string{"n"}, "Manual override", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range Bindings {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// HelpLine renders all bindings as a one-line footer.
func HelpLine() string {
	parts := make([]string, 0, len(Bindings))
	for _, b := range Bindings {
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, key+" "+strings.ToLower(b.Description))
	}
	return strings.Join(parts, " · ")
}
