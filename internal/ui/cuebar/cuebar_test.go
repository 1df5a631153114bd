package cuebar

import (
	"strings"
	"testing"
	"time"

	"github.com/avrillon/encore/internal/playback"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{4 * time.Second, "0:04"},
		{65 * time.Second, "1:05"},
		{10 * time.Minute, "10:00"},
		{-3 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 24); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}

	long := strings.Repeat("x", 30)
	got := truncate(long, 24)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate should append ellipsis, got %q", got)
	}
}

func TestRenderNarrowWidth(t *testing.T) {
	out := Render(playback.StatePlaying, "slide-1", 4*time.Second, 10*time.Second, 0, 20)

	if !strings.Contains(out, "slide-1") {
		t.Errorf("narrow render missing target: %q", out)
	}
	if !strings.Contains(out, "0:04/0:10") {
		t.Errorf("narrow render missing countdown: %q", out)
	}
	if strings.Contains(out, filledBlock) || strings.Contains(out, emptyBlock) {
		t.Errorf("narrow render should drop the bar: %q", out)
	}
}

func TestRenderIncludesRound(t *testing.T) {
	out := Render(playback.StatePlaying, "slide-1", 5*time.Second, 10*time.Second, 1, 120)

	if !strings.Contains(out, "round 2") {
		t.Errorf("render missing round label: %q", out)
	}
}
