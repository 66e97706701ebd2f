package session

import (
	"sync"
	"time"

	"rentalbot/internal/domain"
)

type entry struct {
	sess    *domain.BookingSession
	touched time.Time
}

// Store keeps one in-progress booking draft per user, in process memory only.
// There is no persistence: a restart silently drops every draft and users
// start over from the main menu.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

// Get returns the user's session, creating an idle one on first use.
func (s *Store) Get(userID int64) *domain.BookingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{sess: domain.NewBookingSession()}
		s.entries[userID] = e
	}
	e.touched = time.Now()
	return e.sess
}

// Clear drops the user's session entirely.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// PurgeIdle removes sessions untouched for longer than maxAge and returns how
// many were dropped. The bot does not schedule this; it exists as an optional
// hardening hook.
func (s *Store) PurgeIdle(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	n := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
