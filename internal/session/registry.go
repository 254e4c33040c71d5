package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/storefront/internal/catalog"
)

// Registry tracks open sessions by ID. Sessions never share state; the
// registry only hands out the one owning a given ID.
type Registry struct {
	catalog      *catalog.Catalog
	historyLimit int
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures a Registry.
type Option func(*Registry)

// WithHistoryLimit sets how many cart changes each session can undo.
func WithHistoryLimit(n int) Option {
	return func(r *Registry) {
		r.historyLimit = n
	}
}

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates an empty registry whose sessions browse cat.
func NewRegistry(cat *catalog.Catalog, opts ...Option) *Registry {
	r := &Registry{
		catalog:      cat,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog shared by all sessions.
func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// Open starts a new session with a random UUID.
func (r *Registry) Open() *Session {
	s := newSession(uuid.New().String(), r.catalog, r.historyLimit, r.now)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	return s
}

// Get returns the session with the given ID.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// End discards the session with the given ID.
func (r *Registry) End(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Sweep ends every session idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
