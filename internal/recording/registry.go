package recording

import (
	"sync"

	"github.com/avrillon/encore/internal/timing"
)

// Registry hands out at most one recording session per subject kind.
// Sessions are created lazily and reused; the session's own Start
// guard rejects a second concurrent recording.
type Registry struct {
	mu       sync.Mutex
	store    timing.Store
	sessions map[timing.SubjectKind]*Session
}

// NewRegistry creates a registry backed by store.
func NewRegistry(store timing.Store) *Registry {
	return &Registry{
		store:    store,
		sessions: make(map[timing.SubjectKind]*Session),
	}
}

// Session returns the singleton session for the kind.
func (r *Registry) Session(kind timing.SubjectKind) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[kind]
	if !ok {
		s = NewSession(r.store)
		r.sessions[kind] = s
	}
	return s
}

// AbortAll discards every in-progress recording.
func (r *Registry) AbortAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		s.Abort()
	}
}
