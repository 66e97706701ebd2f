package domain

// DateLayout is the calendar-day format used everywhere: in sessions, in
// storage and in callback payloads. Lexicographic order equals calendar order.
const DateLayout = "2006-01-02"

// Line is one position of a booking: an equipment item and how many units.
type Line struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Booking is a confirmed reservation of equipment for one calendar day.
// Quantity and Price are totals over Lines, recomputed from the catalog at
// insert time and never trusted from client state.
type Booking struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Date     string `json:"date"`
	Lines    []Line `json:"lines"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// ShortEquipment renders the first few item names for inline button labels.
func (b *Booking) ShortEquipment(limit int) string {
	s := ""
	for i, l := range b.Lines {
		if i == limit {
			return s + "..."
		}
		if i > 0 {
			s += ", "
		}
		s += l.Item
	}
	return s
}
