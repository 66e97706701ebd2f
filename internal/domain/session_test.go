package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingSession_AddAndRemove(t *testing.T) {
	s := NewBookingSession()
	assert.True(t, s.Empty())

	assert.Equal(t, 1, s.AddItem("600x"))
	assert.Equal(t, 2, s.AddItem("600x"))
	assert.Equal(t, 1, s.AddItem("Рации"))
	assert.Equal(t, 3, s.TotalQuantity())

	assert.Equal(t, 1, s.RemoveItem("600x"))
	assert.Equal(t, 1, s.Quantity("600x"))
}

func TestBookingSession_RemoveLastUnitDeletesEntry(t *testing.T) {
	s := NewBookingSession()
	s.AddItem("Рации")

	assert.Equal(t, 0, s.RemoveItem("Рации"))
	_, present := s.Items["Рации"]
	assert.False(t, present, "entry must be deleted, not set to zero")
	assert.True(t, s.Empty())
}

func TestBookingSession_RemoveMissingIsNoop(t *testing.T) {
	s := NewBookingSession()
	assert.Equal(t, 0, s.RemoveItem("нет"))
	assert.True(t, s.Empty())
}

func TestBookingSession_Reset(t *testing.T) {
	s := NewBookingSession()
	s.State = StateConfirming
	s.Date = "2030-05-01"
	s.Category = "Свет"
	s.AddItem("600x")
	s.EditingBookingID = 7

	s.Reset()

	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.Category)
	assert.True(t, s.Empty())
	assert.False(t, s.IsEdit())
}
