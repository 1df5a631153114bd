// Package playback replays a persisted timing sequence with its
// recorded cadence: looping, pause accumulation and live correction.
// One session drives the presentation layer from a single cancellable
// goroutine; control calls never block on the schedule.
package playback

import (
	"sync"
	"time"

	"github.com/avrillon/encore/internal/presentation"
	"github.com/avrillon/encore/internal/segment"
	"github.com/avrillon/encore/internal/timing"
)

const (
	defaultTick = 10 * time.Millisecond

	// A derived composite total is only corrected when the round ran
	// measurably short, and long enough to mean anything.
	adaptiveMinElapsed = 5 * time.Second
	adaptiveRatio      = 0.8
)

// step is one scheduled move-then-dwell of the plan.
type step struct {
	targetID string
	hint     float64
	duration time.Duration
	// entryIndex links the step back to the loaded sequence so live
	// corrections can be written through; -1 for steps not backed by a
	// single stored entry (derived composite scroll spans).
	entryIndex int
}

// Options configure a session.
type Options struct {
	Kind         timing.SubjectKind
	TargetRounds int           // RoundsInfinite for endless looping
	Tick         time.Duration // wait-loop poll interval
	DefaultTotal time.Duration // composite fallback total duration
}

// Session is the playback state machine for one subject kind.
type Session struct {
	mu sync.Mutex

	store timing.Store
	port  presentation.Port
	opts  Options
	now   func() time.Time

	state     State
	subjectID string
	seq       *timing.Sequence
	plan      []step
	derived   bool
	planTotal time.Duration

	currentIndex    int
	prevIndex       int
	completedRounds int
	wrapped         bool

	paused              bool
	pauseStartedAt      time.Time
	totalPauseThisEntry time.Duration
	entryStartedAt      time.Time
	roundStartedAt      time.Time
	skipWait            bool

	cancel chan struct{}
	writer *durationWriter

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// NewSession creates a session bound to a store and a presentation
// port.
func NewSession(store timing.Store, port presentation.Port, opts Options) *Session {
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.TargetRounds == 0 {
		opts.TargetRounds = RoundsInfinite
	}
	s := &Session{
		store: store,
		port:  port,
		opts:  opts,
		now:   time.Now,
		state: StateIdle,
	}
	s.writer = newDurationWriter(store, func(op string, err error) {
		s.broadcastError(ErrorEvent{Operation: op, Err: err})
	})
	return s
}

// Start loads the subject's sequence and begins the scheduling loop.
// Fails with ErrNoTimingData when a non-composite subject has no
// recorded entries; composite subjects always get a synthesized plan.
func (s *Session) Start(subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return timing.ErrNotActive
	}
	if s.state.IsActive() {
		return timing.ErrAlreadyActive
	}

	seq, err := s.store.GetSequence(subjectID)
	if err != nil {
		return err
	}

	plan, derived, total, err := s.buildPlan(subjectID, seq)
	if err != nil {
		return err
	}

	s.subjectID = subjectID
	s.seq = seq
	s.plan = plan
	s.derived = derived
	s.planTotal = total
	s.currentIndex = 0
	s.prevIndex = -1
	s.completedRounds = 0
	s.wrapped = false
	s.paused = false
	s.skipWait = false
	s.roundStartedAt = s.now()

	prev := s.state
	s.state = StatePlaying
	s.cancel = make(chan struct{})
	go s.run(s.cancel)

	s.broadcastState(StateChange{Previous: prev, Current: StatePlaying})
	return nil
}

func (s *Session) buildPlan(subjectID string, seq *timing.Sequence) ([]step, bool, time.Duration, error) {
	if s.opts.Kind == timing.SubjectComposite {
		total, ok, err := s.store.TotalDuration(subjectID)
		if err != nil || !ok {
			total = s.opts.DefaultTotal
		}
		builder := segment.Builder{DefaultTotal: s.opts.DefaultTotal}
		p := builder.Build(seq, total, s.port.ScrollableExtent())

		plan := make([]step, 0, len(p.Segments))
		for _, seg := range p.Segments {
			st := step{
				targetID:   seg.TargetID,
				hint:       seg.EndPosition,
				duration:   seg.Duration,
				entryIndex: -1,
			}
			// Pause segments sit on exactly one loop entry; those can
			// take live duration corrections.
			if seg.Kind == segment.KindPause {
				st.entryIndex = seq.IndexOf(seg.TargetID)
			}
			plan = append(plan, st)
		}
		return plan, p.Derived, p.Total, nil
	}

	if seq.Len() == 0 {
		return nil, false, 0, timing.ErrNoTimingData
	}
	entries := seq.Entries()
	plan := make([]step, len(entries))
	for i, e := range entries {
		plan[i] = step{
			targetID:   e.TargetID,
			hint:       e.PositionHint,
			duration:   e.Duration,
			entryIndex: i,
		}
	}
	return plan, false, 0, nil
}

// run is the scheduling loop. It owns no state beyond its cancel
// channel; everything else lives behind the session mutex.
func (s *Session) run(cancel chan struct{}) {
	first := true
	for {
		s.mu.Lock()
		// A restarted session owns a fresh cancel channel; a loop
		// holding the old one must bow out.
		if s.cancel != cancel || !s.state.IsActive() || s.currentIndex >= len(s.plan) {
			s.mu.Unlock()
			return
		}
		st := s.plan[s.currentIndex]
		direct := first || s.wrapped || s.currentIndex < s.prevIndex
		s.wrapped = false
		idx := s.currentIndex
		total := len(s.plan)
		round := s.completedRounds
		s.mu.Unlock()

		s.port.JumpTo(st.targetID, st.hint, !direct)

		s.mu.Lock()
		s.entryStartedAt = s.now()
		s.totalPauseThisEntry = 0
		s.skipWait = false
		s.mu.Unlock()

		s.broadcastProgress(Progress{
			CurrentIndex: idx,
			TotalCount:   total,
			Remaining:    st.duration,
			TargetID:     st.targetID,
			Round:        round,
		})

		if !s.wait(cancel, st.duration) {
			return
		}

		if done := s.advance(); done {
			return
		}
		first = false
	}
}

// wait dwells on the current step, polling so pause, cancellation and
// skip requests interrupt promptly. Returns false when cancelled.
func (s *Session) wait(cancel chan struct{}, d time.Duration) bool {
	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return false
		case <-ticker.C:
			s.mu.Lock()
			if !s.state.IsActive() {
				s.mu.Unlock()
				return false
			}
			if s.skipWait {
				s.skipWait = false
				s.mu.Unlock()
				return true
			}
			if s.paused {
				s.mu.Unlock()
				continue
			}
			elapsed := s.now().Sub(s.entryStartedAt) - s.totalPauseThisEntry
			s.mu.Unlock()
			if elapsed >= d {
				return true
			}
		}
	}
}

// advance moves past the current step, handling round wrap. Returns
// true when playback is over.
func (s *Session) advance() bool {
	s.mu.Lock()
	if !s.state.IsActive() {
		s.mu.Unlock()
		return true
	}

	s.prevIndex = s.currentIndex
	s.currentIndex++
	if s.currentIndex < len(s.plan) {
		s.mu.Unlock()
		return false
	}

	s.completedRounds++
	s.maybeCorrectTotalLocked()

	if !ShouldContinue(s.opts.TargetRounds, s.completedRounds) {
		home := s.plan[0]
		prev := s.state
		s.state = StateCompleted
		rounds := s.completedRounds
		subject := s.subjectID
		s.mu.Unlock()

		// Rest the display on the first frame.
		s.port.JumpTo(home.targetID, home.hint, false)
		s.broadcastState(StateChange{Previous: prev, Current: StateCompleted})
		s.broadcastCompleted(Completed{SubjectID: subject, Rounds: rounds})
		return true
	}

	// Resuming a loop at animated speed reads as a glitch; the wrap
	// back to the first entry is always a direct jump.
	s.currentIndex = 0
	s.prevIndex = -1
	s.wrapped = true
	s.roundStartedAt = s.now()
	s.mu.Unlock()
	return false
}

// maybeCorrectTotalLocked treats a round that finished well short of
// the configured total as a signal that the total was set too long,
// and adopts the observed time. Applies to derived plans only.
func (s *Session) maybeCorrectTotalLocked() {
	if !s.derived {
		return
	}
	elapsed := s.now().Sub(s.roundStartedAt)
	if elapsed < adaptiveMinElapsed {
		return
	}
	if float64(elapsed) >= adaptiveRatio*float64(s.planTotal) {
		return
	}
	s.planTotal = elapsed
	for i := range s.plan {
		s.plan[i].duration = elapsed
	}
	s.writer.enqueue(storeUpdate{
		kind:      updateTotal,
		subjectID: s.subjectID,
		duration:  elapsed,
	})
}

// Pause suspends the countdown. Only valid while Playing; elapsed
// progress on the current entry is kept.
func (s *Session) Pause() error {
	s.mu.Lock()
	if !s.state.CanPause() {
		s.mu.Unlock()
		return timing.ErrNotActive
	}
	s.pauseStartedAt = s.now()
	s.paused = true
	prev := s.state
	s.state = StatePaused
	s.mu.Unlock()

	s.broadcastState(StateChange{Previous: prev, Current: StatePaused})
	return nil
}

// Resume folds the paused time into the current entry's stored
// duration and moves straight on to the next entry: resuming means "I
// want to move on now", not "finish waiting".
//
// The corrected duration is what the audience actually experienced:
// active waiting before the pause plus all time spent paused on this
// entry. It is written to the in-memory sequence immediately and to
// the store in the background.
func (s *Session) Resume() error {
	s.mu.Lock()
	if !s.state.CanResume() {
		s.mu.Unlock()
		return timing.ErrNotActive
	}

	now := s.now()
	s.totalPauseThisEntry += now.Sub(s.pauseStartedAt)
	playedBeforePause := s.pauseStartedAt.Sub(s.entryStartedAt)
	corrected := playedBeforePause + s.totalPauseThisEntry

	s.correctCurrentLocked(corrected)

	s.paused = false
	s.skipWait = true
	prev := s.state
	s.state = StatePlaying
	s.mu.Unlock()

	s.broadcastState(StateChange{Previous: prev, Current: StatePlaying})
	return nil
}

// NotifyManualNavigation re-times the entry the operator just left: an
// override during playback overwrites the stored dwell with the time
// actually spent, then skips ahead. This is how a script gets
// live-tuned during a dry run. The reported target id is advisory; the
// correction always lands on the current entry.
func (s *Session) NotifyManualNavigation(targetID string) {
	s.mu.Lock()
	if s.state != StatePlaying || s.paused {
		s.mu.Unlock()
		return
	}

	now := s.now()
	actual := now.Sub(s.entryStartedAt)
	s.correctCurrentLocked(actual)

	s.entryStartedAt = now
	s.totalPauseThisEntry = 0
	s.skipWait = true
	s.mu.Unlock()
}

// correctCurrentLocked overwrites the current entry's duration in
// memory and queues the store write. Steps without a backing entry
// (derived scroll spans) are skipped; the adaptive total handles those.
func (s *Session) correctCurrentLocked(d time.Duration) {
	if s.currentIndex >= len(s.plan) {
		return
	}
	st := &s.plan[s.currentIndex]
	if st.entryIndex < 0 {
		return
	}
	if d < 0 {
		d = 0
	}
	st.duration = d
	s.seq.SetDuration(st.targetID, d)
	s.writer.enqueue(storeUpdate{
		kind:      updateEntry,
		subjectID: s.subjectID,
		targetID:  st.targetID,
		duration:  d,
	})
}

// Stop cancels the schedule and returns to Idle. Safe to call from any
// state, any number of times.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	prev := s.state
	s.state = StateIdle
	s.paused = false
	s.mu.Unlock()

	s.broadcastState(StateChange{Previous: prev, Current: StateIdle})
}

// State returns the current playback state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SubjectID returns the subject being played, or "" when idle.
func (s *Session) SubjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return ""
	}
	return s.subjectID
}

// CurrentIndex returns the index of the step being played (-1 when no
// plan is loaded).
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.plan) == 0 {
		return -1
	}
	return s.currentIndex
}

// CurrentTarget returns the target of the step being played.
func (s *Session) CurrentTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsActive() || s.currentIndex >= len(s.plan) {
		return ""
	}
	return s.plan[s.currentIndex].targetID
}

// PlanLen returns the number of steps in the loaded plan.
func (s *Session) PlanLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plan)
}

// CompletedRounds returns how many full rounds have finished.
func (s *Session) CompletedRounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedRounds
}

// Remaining returns the active countdown left on the current step.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsActive() || s.currentIndex >= len(s.plan) {
		return 0
	}
	st := s.plan[s.currentIndex]

	var elapsed time.Duration
	if s.paused {
		elapsed = s.pauseStartedAt.Sub(s.entryStartedAt) - s.totalPauseThisEntry
	} else {
		elapsed = s.now().Sub(s.entryStartedAt) - s.totalPauseThisEntry
	}

	remaining := st.duration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Duration returns the dwell of the current step.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsActive() || s.currentIndex >= len(s.plan) {
		return 0
	}
	return s.plan[s.currentIndex].duration
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback, flushes pending store writes and closes all
// subscriptions.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Stop()
	s.writer.close()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *Session) broadcastState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *Session) broadcastProgress(e Progress) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendProgress(e)
	}
}

func (s *Session) broadcastCompleted(e Completed) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendCompleted(e)
	}
}

func (s *Session) broadcastError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
