// Package cuebar renders the stage monitor's playback bar: state
// glyph, current target, countdown and a gradient progress bar.
package cuebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/avrillon/encore/internal/playback"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	gradientFrom = "#5A56E0"
	gradientTo   = "#EE6FF8"
)

// Render draws the bar for the given playback state.
// Format: ▶  target  ▓▓▓▓▓░░░░░  0:04/0:10  round 2
func Render(state playback.State, target string, remaining, total time.Duration, round, width int) string {
	status := glyph(state)

	remStr := formatDuration(remaining)
	totStr := formatDuration(total)
	timeStr := remStr + "/" + totStr
	roundStr := fmt.Sprintf("round %d", round+1)

	label := truncate(target, 24)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(label) + 2 +
		2 + lipgloss.Width(timeStr) + 2 + lipgloss.Width(roundStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for a bar, just show the countdown
		return status + "  " + label + "  " + timeStr
	}

	// Filled portion counts down: full bar at entry start, empty at advance.
	var ratio float64
	if total > 0 {
		ratio = float64(remaining) / float64(total)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := gradientBar(filled) + emptyStyle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + label + "  " + bar + "  " + timeStr + "  " + roundStr
}

func glyph(state playback.State) string {
	switch state {
	case playback.StatePlaying:
		return "▶"
	case playback.StatePaused:
		return "⏸"
	case playback.StateCompleted:
		return "■"
	default:
		return "·"
	}
}

// gradientBar renders n filled blocks blended in HCL space for a
// perceptually even gradient.
func gradientBar(n int) string {
	if n <= 0 {
		return ""
	}
	from, _ := colorful.Hex(gradientFrom)
	to, _ := colorful.Hex(gradientTo)

	var b strings.Builder
	for i := range n {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := from.BlendHcl(to, t)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(filledBlock))
	}
	return b.String()
}

// truncate shortens a label to max grapheme clusters, appending an
// ellipsis when cut.
func truncate(s string, max int) string {
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) <= max {
		return s
	}
	return strings.Join(clusters[:max-1], "") + "…"
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
