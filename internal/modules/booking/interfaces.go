package booking

import (
	"context"

	"rentalbot/internal/domain"
)

// BookingRepository is the durable store of active and archived bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	DeleteByID(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByDate(ctx context.Context, date string, excludeID int64) ([]domain.Booking, error)
	DistinctDates(ctx context.Context) ([]string, error)
	UpdateDate(ctx context.Context, id int64, date string) error
	ArchiveExpired(ctx context.Context, today string) (int64, error)
	ListArchiveByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListArchive(ctx context.Context) ([]domain.Booking, error)
}

// AvailabilityChecker answers how many units of an item remain free on a day.
type AvailabilityChecker interface {
	Available(ctx context.Context, item, date string, excludeID int64) (int, error)
}

// NotificationSender announces terminal transitions to the shared channel.
// Delivery is best-effort: errors are logged by the caller and never retried.
type NotificationSender interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// EventPublisher pushes booking events to live subscribers (the websocket
// feed). Best-effort, same as notifications.
type EventPublisher interface {
	Publish(eventType string, b *domain.Booking)
}
