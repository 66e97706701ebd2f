package availability

import (
	"context"

	"rentalbot/internal/domain"
)

// BookingLister is the slice of the booking store the calculator needs.
type BookingLister interface {
	ListByDate(ctx context.Context, date string, excludeID int64) ([]domain.Booking, error)
}
