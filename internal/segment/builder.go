// Package segment derives composite playback plans: a timing sequence
// is collapsed into alternating Scroll/Pause segments using per-entry
// loop markers, with synthesized fallbacks for unscripted subjects.
package segment

import (
	"time"

	"github.com/avrillon/encore/internal/timing"
)

// Kind distinguishes segment behavior during composite playback.
type Kind int

const (
	KindScroll Kind = iota
	KindPause
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScroll:
		return "Scroll"
	case KindPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Segment is one derived playback step. Not persisted; a fresh plan is
// built at every playback start.
type Segment struct {
	Kind          Kind
	StartPosition float64
	EndPosition   float64
	Duration      time.Duration
	TargetID      string
}

// Plan is an ordered list of segments plus how it was obtained.
// Derived plans (no usable recorded durations) consist of a single
// synthesized scroll whose total may be corrected adaptively after a
// round finishes early.
type Plan struct {
	Segments []Segment
	Derived  bool
	Total    time.Duration
}

const (
	// DefaultTotal is used when no total duration was ever configured
	// for a subject.
	DefaultTotal = 100 * time.Second

	// extentCap keeps the bottom quarter of the subject visible when a
	// scroll span has to be synthesized.
	extentCap = 0.75
)

// Builder derives composite plans.
type Builder struct {
	// DefaultTotal overrides the package default when > 0.
	DefaultTotal time.Duration
}

// Build derives the plan for a sequence. total is the externally
// configured total duration (0 if none); extent is the scrollable
// extent reported by the presentation layer.
//
// Cases, in priority order:
//  1. entries with recorded durations: fold into Scroll spans broken
//     by Pause segments at loop points
//  2. two or more positions, no durations: one scroll over all of them
//  3. one position: one scroll to 75% of the remaining extent
//  4. nothing at all: one scroll over 75% of the full extent
func (b *Builder) Build(seq *timing.Sequence, total time.Duration, extent float64) Plan {
	if seq != nil && seq.Len() > 0 && seq.HasDurations() {
		return Plan{Segments: b.fromSequence(seq)}
	}

	if total <= 0 {
		total = b.DefaultTotal
	}
	if total <= 0 {
		total = DefaultTotal
	}

	var seg Segment
	switch {
	case seq != nil && seq.Len() >= 2:
		first, last := seq.Entry(0), seq.Entry(seq.Len()-1)
		seg = Segment{
			Kind:          KindScroll,
			StartPosition: first.PositionHint,
			EndPosition:   last.PositionHint,
			Duration:      total,
			TargetID:      last.TargetID,
		}
	case seq != nil && seq.Len() == 1:
		only := seq.Entry(0)
		seg = Segment{
			Kind:          KindScroll,
			StartPosition: only.PositionHint,
			EndPosition:   only.PositionHint + extentCap*(extent-only.PositionHint),
			Duration:      total,
			TargetID:      only.TargetID,
		}
	default:
		seg = Segment{
			Kind:        KindScroll,
			EndPosition: extentCap * extent,
			Duration:    total,
		}
	}

	return Plan{Segments: []Segment{seg}, Derived: true, Total: total}
}

// fromSequence folds entries into scroll spans broken at loop points.
// Each loop point closes the accumulated span as one Scroll segment
// (duration = sum of the spanned entries), then emits a Pause segment
// holding the loop entry's own duration, and starts a new span there.
func (b *Builder) fromSequence(seq *timing.Sequence) []Segment {
	var segments []Segment

	entries := seq.Entries()
	spanStart := entries[0].PositionHint
	var accum time.Duration
	spanned := 0

	for i := range entries {
		e := &entries[i]
		if e.IsLoopPoint() {
			if spanned > 0 {
				segments = append(segments, Segment{
					Kind:          KindScroll,
					StartPosition: spanStart,
					EndPosition:   e.PositionHint,
					Duration:      accum,
					TargetID:      e.TargetID,
				})
			}
			segments = append(segments, Segment{
				Kind:          KindPause,
				StartPosition: e.PositionHint,
				EndPosition:   e.PositionHint,
				Duration:      e.Duration,
				TargetID:      e.TargetID,
			})
			spanStart = e.PositionHint
			accum = 0
			spanned = 0
			continue
		}
		accum += e.Duration
		spanned++
	}

	// Flush the trailing span
	if spanned > 0 {
		last := &entries[len(entries)-1]
		segments = append(segments, Segment{
			Kind:          KindScroll,
			StartPosition: spanStart,
			EndPosition:   last.PositionHint,
			Duration:      accum,
			TargetID:      last.TargetID,
		})
	}

	return segments
}
