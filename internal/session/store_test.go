package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentalbot/internal/domain"
)

func TestStore_GetCreatesIdleSession(t *testing.T) {
	s := NewStore()

	sess := s.Get(1)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Empty())

	// Same user gets the same session back.
	sess.State = domain.StateChoosingDate
	assert.Same(t, sess, s.Get(1))

	// Different users are isolated.
	assert.Equal(t, domain.StateIdle, s.Get(2).State)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Get(1).State = domain.StateConfirming

	s.Clear(1)

	assert.Equal(t, domain.StateIdle, s.Get(1).State)
}

func TestStore_PurgeIdle(t *testing.T) {
	s := NewStore()
	s.Get(1)
	s.Get(2)

	// Nothing is old enough yet.
	assert.Equal(t, 0, s.PurgeIdle(time.Hour))

	// Everything is older than a zero cutoff.
	time.Sleep(time.Millisecond)
	assert.Equal(t, 2, s.PurgeIdle(0))
	assert.Equal(t, 0, s.PurgeIdle(0))
}
