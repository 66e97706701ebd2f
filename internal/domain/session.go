package domain

// SessionState enumerates the steps of the booking conversation.
type SessionState string

const (
	StateIdle               SessionState = "idle"
	StateChoosingDate       SessionState = "choosing_date"
	StateChoosingCategory   SessionState = "choosing_category"
	StateChoosingItems      SessionState = "choosing_items"
	StateConfirming         SessionState = "confirming"
	StateRemovingItems      SessionState = "removing_items"
	StateChoosingDelete     SessionState = "choosing_delete"
	StateChoosingEdit       SessionState = "choosing_edit"
	StateChoosingEditAction SessionState = "choosing_edit_action"
	StateEditingDate        SessionState = "editing_date"
)

// BookingSession is one user's in-progress draft. It lives in process memory
// only and is lost on restart. EditingBookingID is non-zero when the draft
// replaces an existing booking instead of creating a fresh one.
type BookingSession struct {
	State            SessionState
	Date             string
	Category         string
	Items            map[string]int
	EditingBookingID int64
}

func NewBookingSession() *BookingSession {
	return &BookingSession{
		State: StateIdle,
		Items: make(map[string]int),
	}
}

func (s *BookingSession) Quantity(item string) int {
	return s.Items[item]
}

// AddItem increments the draft quantity for an item by one.
func (s *BookingSession) AddItem(item string) int {
	s.Items[item]++
	return s.Items[item]
}

// RemoveItem decrements the draft quantity by one; the entry is deleted
// entirely when it reaches zero. Returns the remaining quantity.
func (s *BookingSession) RemoveItem(item string) int {
	n, ok := s.Items[item]
	if !ok {
		return 0
	}
	if n <= 1 {
		delete(s.Items, item)
		return 0
	}
	s.Items[item] = n - 1
	return s.Items[item]
}

func (s *BookingSession) TotalQuantity() int {
	total := 0
	for _, n := range s.Items {
		total += n
	}
	return total
}

func (s *BookingSession) Empty() bool { return len(s.Items) == 0 }

func (s *BookingSession) IsEdit() bool { return s.EditingBookingID != 0 }

// Reset returns the session to the idle state, discarding the draft.
func (s *BookingSession) Reset() {
	s.State = StateIdle
	s.Date = ""
	s.Category = ""
	s.Items = make(map[string]int)
	s.EditingBookingID = 0
}
