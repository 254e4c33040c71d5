package session

import (
	"sync"
	"time"

	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/models"
)

// DefaultHistoryLimit bounds the number of cart snapshots kept for undo.
const DefaultHistoryLimit = 50

// Session is the single owner of one user's State.
// Actions are applied one at a time, each to completion.
type Session struct {
	id      string
	catalog *catalog.Catalog

	mu       sync.Mutex
	state    State
	history  []models.Cart
	limit    int
	lastSeen time.Time
	now      func() time.Time
}

func newSession(id string, cat *catalog.Catalog, limit int, now func() time.Time) *Session {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Session{
		id:       id,
		catalog:  cat,
		state:    Initial(cat),
		limit:    limit,
		lastSeen: now(),
		now:      now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return s.state
}

// Do applies action and returns the resulting state. A failed action leaves
// the session unchanged and returns the current state with the error.
func (s *Session) Do(action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	next, err := Apply(s.catalog, s.state, action)
	if err != nil {
		return s.state, err
	}

	if !sameCart(s.state.Cart, next.Cart) {
		s.remember(s.state.Cart)
	}
	s.state = next
	return s.state, nil
}

// Undo restores the cart as it was before the last successful cart change.
// The category selection is left as is.
func (s *Session) Undo() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()

	if len(s.history) == 0 {
		return s.state, ErrNothingToUndo
	}

	last := len(s.history) - 1
	s.state.Cart = s.history[last]
	s.history = s.history[:last]
	return s.state, nil
}

// HistoryLen returns the number of cart changes that can be undone.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// remember keeps prior, dropping the oldest snapshot past the limit.
// Carts are never mutated in place, so no copy is needed.
func (s *Session) remember(prior models.Cart) {
	if len(s.history) == s.limit {
		s.history = append(s.history[:0:0], s.history[1:]...)
	}
	s.history = append(s.history, prior)
}

// sameCart reports whether a and b hold the same lines in the same order.
func sameCart(a, b models.Cart) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ProductID != b[i].ProductID ||
			a[i].Quantity != b[i].Quantity ||
			a[i].Name != b[i].Name ||
			!a[i].Price.Equal(b[i].Price) {
			return false
		}
	}
	return true
}
