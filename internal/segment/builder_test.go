package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avrillon/encore/internal/timing"
)

func sec(n float64) time.Duration {
	return time.Duration(n * float64(time.Second))
}

func TestBuild_FromRecordedSequence(t *testing.T) {
	seq := timing.NewSequence(
		timing.Entry{TargetID: "a", Duration: sec(2), PositionHint: 0},
		timing.Entry{TargetID: "b", Duration: sec(3), PositionHint: 100, LoopMarker: 1},
		timing.Entry{TargetID: "c", Duration: sec(1), PositionHint: 200, LoopMarker: 3},
		timing.Entry{TargetID: "d", Duration: sec(2), PositionHint: 300},
	)

	b := &Builder{}
	plan := b.Build(seq, 0, 1000)

	if plan.Derived {
		t.Fatal("plan marked derived, want recorded")
	}

	want := []Segment{
		{Kind: KindScroll, StartPosition: 0, EndPosition: 200, Duration: sec(5), TargetID: "c"},
		{Kind: KindPause, StartPosition: 200, EndPosition: 200, Duration: sec(1), TargetID: "c"},
		{Kind: KindScroll, StartPosition: 200, EndPosition: 300, Duration: sec(2), TargetID: "d"},
	}
	assert.Equal(t, want, plan.Segments)
}

func TestBuild_LoopPointFirst(t *testing.T) {
	// No span accumulates before the loop point, so no empty scroll
	// segment is emitted ahead of the pause.
	seq := timing.NewSequence(
		timing.Entry{TargetID: "a", Duration: sec(4), PositionHint: 50, LoopMarker: 2},
		timing.Entry{TargetID: "b", Duration: sec(2), PositionHint: 150},
	)

	b := &Builder{}
	plan := b.Build(seq, 0, 1000)

	want := []Segment{
		{Kind: KindPause, StartPosition: 50, EndPosition: 50, Duration: sec(4), TargetID: "a"},
		{Kind: KindScroll, StartPosition: 50, EndPosition: 150, Duration: sec(2), TargetID: "b"},
	}
	assert.Equal(t, want, plan.Segments)
}

func TestBuild_TwoPositionsNoDurations(t *testing.T) {
	seq := timing.NewSequence(
		timing.Entry{TargetID: "a", PositionHint: 10},
		timing.Entry{TargetID: "b", PositionHint: 400},
		timing.Entry{TargetID: "c", PositionHint: 700},
	)

	b := &Builder{}
	plan := b.Build(seq, 30*time.Second, 1000)

	if !plan.Derived {
		t.Fatal("plan not marked derived")
	}
	assert.Equal(t, 30*time.Second, plan.Total)
	want := []Segment{
		{Kind: KindScroll, StartPosition: 10, EndPosition: 700, Duration: 30 * time.Second, TargetID: "c"},
	}
	assert.Equal(t, want, plan.Segments)
}

func TestBuild_SinglePosition(t *testing.T) {
	seq := timing.NewSequence(timing.Entry{TargetID: "a", PositionHint: 200})

	b := &Builder{}
	plan := b.Build(seq, 0, 1000)

	if len(plan.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(plan.Segments))
	}
	seg := plan.Segments[0]
	assert.Equal(t, 200.0, seg.StartPosition)
	// 200 + 0.75*(1000-200) = 800
	assert.InDelta(t, 800.0, seg.EndPosition, 1e-9)
	assert.Equal(t, DefaultTotal, seg.Duration)
}

func TestBuild_EmptySequence(t *testing.T) {
	b := &Builder{}
	plan := b.Build(timing.NewSequence(), 0, 1000)

	if !plan.Derived {
		t.Fatal("plan not marked derived")
	}
	if len(plan.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(plan.Segments))
	}
	seg := plan.Segments[0]
	assert.Equal(t, 0.0, seg.StartPosition)
	assert.InDelta(t, 750.0, seg.EndPosition, 1e-9)
	assert.Equal(t, DefaultTotal, seg.Duration)
	assert.Equal(t, DefaultTotal, plan.Total)
}

func TestBuild_NilSequence(t *testing.T) {
	b := &Builder{DefaultTotal: 42 * time.Second}
	plan := b.Build(nil, 0, 400)

	if len(plan.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(plan.Segments))
	}
	assert.Equal(t, 42*time.Second, plan.Segments[0].Duration)
	assert.InDelta(t, 300.0, plan.Segments[0].EndPosition, 1e-9)
}

func TestBuild_BuilderDefaultOverride(t *testing.T) {
	b := &Builder{DefaultTotal: 10 * time.Second}
	plan := b.Build(timing.NewSequence(), 0, 1000)

	assert.Equal(t, 10*time.Second, plan.Total)
}

func TestBuild_ConfiguredTotalWins(t *testing.T) {
	b := &Builder{DefaultTotal: 10 * time.Second}
	plan := b.Build(timing.NewSequence(), 25*time.Second, 1000)

	assert.Equal(t, 25*time.Second, plan.Total)
}
