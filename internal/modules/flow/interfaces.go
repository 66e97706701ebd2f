package flow

import (
	"context"

	"rentalbot/internal/domain"
)

// BookingService is the slice of the booking module the controller drives.
type BookingService interface {
	Confirm(ctx context.Context, userID int64, username string, sess *domain.BookingSession) (*domain.Booking, error)
	Delete(ctx context.Context, id, userID int64) (*domain.Booking, error)
	GetOwned(ctx context.Context, id, userID int64) (*domain.Booking, error)
	EditDate(ctx context.Context, id, userID int64, newDate string) (*domain.Booking, error)
	ListMine(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
	BusyDates(ctx context.Context) ([]string, error)
	ArchiveMine(ctx context.Context, userID int64) ([]domain.Booking, error)
}

// AvailabilityService answers remaining stock questions for keyboards and
// addition guards.
type AvailabilityService interface {
	Available(ctx context.Context, item, date string, excludeID int64) (int, error)
	BookedByDate(ctx context.Context, date string, excludeID int64) (map[string]int, error)
}
