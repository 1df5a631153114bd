// Package presentation defines the narrow contract between the timing
// engine and whatever renders the show. The engine never touches
// display state directly; it asks the port to move and queries layout
// metrics from it.
package presentation

// Port is implemented by the presentation layer.
type Port interface {
	// JumpTo moves the display to the given target. animated=false
	// demands an instantaneous (direct) jump; animated=true lets the
	// renderer ease into position.
	JumpTo(targetID string, positionHint float64, animated bool)

	// ScrollableExtent returns the total scrollable span of the
	// current subject, in the same units as position hints.
	ScrollableExtent() float64
}
