package playback

import (
	"sync"

	"github.com/avrillon/encore/internal/timing"
)

// Registry enforces at most one playback session per subject kind.
// Sessions are created lazily through the factory and reused; each
// session's own Start guard rejects overlapping playback.
type Registry struct {
	mu       sync.Mutex
	factory  func(kind timing.SubjectKind) *Session
	sessions map[timing.SubjectKind]*Session
}

// NewRegistry creates a registry. The factory builds a session for a
// kind on first use.
func NewRegistry(factory func(kind timing.SubjectKind) *Session) *Registry {
	return &Registry{
		factory:  factory,
		sessions: make(map[timing.SubjectKind]*Session),
	}
}

// Session returns the singleton session for the kind.
func (r *Registry) Session(kind timing.SubjectKind) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[kind]
	if !ok {
		s = r.factory(kind)
		r.sessions[kind] = s
	}
	return s
}

// StopAll stops every active session.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		s.Stop()
	}
}

// Close closes every session.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		_ = s.Close()
	}
	r.sessions = make(map[timing.SubjectKind]*Session)
	return nil
}
