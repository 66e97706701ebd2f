package availability

import (
	"context"

	"rentalbot/internal/catalog"
)

// Service computes remaining stock per item and day. There is no caching: the
// store is the source of truth and every call reloads that day's bookings, so
// the result can go stale the moment a concurrent write lands. Callers clamp
// negatives to zero for display and re-verify before accepting additions.
type Service struct {
	catalog  *catalog.Catalog
	bookings BookingLister
}

func NewService(c *catalog.Catalog, bookings BookingLister) *Service {
	return &Service{catalog: c, bookings: bookings}
}

// Available returns catalog stock minus the quantity already booked for the
// item on the given day. excludeID removes one booking's own contribution,
// used when an edit is re-validated against itself.
func (s *Service) Available(ctx context.Context, item, date string, excludeID int64) (int, error) {
	it, ok := s.catalog.Find(item)
	if !ok {
		return 0, ErrUnknownItem
	}

	booked, err := s.BookedByDate(ctx, date, excludeID)
	if err != nil {
		return 0, err
	}
	return it.Stock - booked[item], nil
}

// BookedByDate sums booked quantities per item across the day's active
// bookings.
func (s *Service) BookedByDate(ctx context.Context, date string, excludeID int64) (map[string]int, error) {
	bookings, err := s.bookings.ListByDate(ctx, date, excludeID)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]int)
	for _, b := range bookings {
		for _, l := range b.Lines {
			booked[l.Item] += l.Quantity
		}
	}
	return booked, nil
}
