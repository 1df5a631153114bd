package playback

import (
	"time"

	"github.com/avrillon/encore/internal/timing"
)

const writerQueueSize = 64

type updateKind int

const (
	updateEntry updateKind = iota
	updateTotal
)

type storeUpdate struct {
	kind      updateKind
	subjectID string
	targetID  string
	duration  time.Duration
}

// durationWriter pushes duration corrections to the store from a
// dedicated goroutine so the scheduling loop never waits on
// persistence I/O. Writes are fire-and-forget: a failure is reported
// through onError and otherwise dropped, as is an update that does not
// fit in the queue.
type durationWriter struct {
	store   timing.Store
	ch      chan storeUpdate
	quit    chan struct{}
	stopped chan struct{}
	onError func(op string, err error)
}

func newDurationWriter(store timing.Store, onError func(op string, err error)) *durationWriter {
	w := &durationWriter{
		store:   store,
		ch:      make(chan storeUpdate, writerQueueSize),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		onError: onError,
	}
	go w.loop()
	return w
}

// enqueue hands an update to the writer without blocking.
func (w *durationWriter) enqueue(u storeUpdate) {
	select {
	case w.ch <- u:
	default:
		w.onError("enqueue duration update", timing.ErrStoreUnavailable)
	}
}

func (w *durationWriter) loop() {
	defer close(w.stopped)
	for {
		select {
		case u := <-w.ch:
			w.apply(u)
		case <-w.quit:
			// Drain what is already queued, then exit
			for {
				select {
				case u := <-w.ch:
					w.apply(u)
				default:
					return
				}
			}
		}
	}
}

func (w *durationWriter) apply(u storeUpdate) {
	var err error
	op := "update duration"
	switch u.kind {
	case updateEntry:
		_, err = w.store.UpdateDuration(u.subjectID, u.targetID, u.duration)
	case updateTotal:
		op = "update total duration"
		err = w.store.SetTotalDuration(u.subjectID, u.duration)
	}
	if err != nil {
		w.onError(op, err)
	}
}

// close stops the writer after draining queued updates.
func (w *durationWriter) close() {
	close(w.quit)
	<-w.stopped
}
