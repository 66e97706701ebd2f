package booking

import (
	"context"
	"log"
	"time"

	"rentalbot/internal/catalog"
	"rentalbot/internal/domain"
)

const (
	EventCreated   = "booking_created"
	EventCancelled = "booking_cancelled"
)

// Service owns the booking lifecycle: the commit protocol, deletion, date
// edits and the opportunistic archive sweep.
//
// The availability check and the insert are separate store calls with nothing
// spanning them: two users confirming the same item for the same date can both
// pass their check and jointly exceed stock. Known limitation, kept from the
// source system rather than masked.
type Service struct {
	repo    BookingRepository
	catalog *catalog.Catalog
	avail   AvailabilityChecker
	notifs  NotificationSender
	events  EventPublisher
}

func NewService(repo BookingRepository, c *catalog.Catalog, avail AvailabilityChecker, notifs NotificationSender, events EventPublisher) *Service {
	return &Service{repo: repo, catalog: c, avail: avail, notifs: notifs, events: events}
}

// Confirm commits a session draft as a booking. Totals are recomputed from
// the catalog, never trusted from the session. When the session edits an
// existing booking the old row is deleted first and a fresh one inserted with
// a new identity; there is no compensation if the insert then fails.
func (s *Service) Confirm(ctx context.Context, userID int64, username string, sess *domain.BookingSession) (*domain.Booking, error) {
	if sess.Empty() {
		return nil, ErrEmptyOrder
	}
	for name := range sess.Items {
		if _, ok := s.catalog.Find(name); !ok {
			return nil, ErrUnknownItem
		}
	}

	lines := make([]domain.Line, 0, len(sess.Items))
	quantity := 0
	price := 0
	for _, it := range s.catalogOrder(sess) {
		n := sess.Items[it.Name]
		lines = append(lines, domain.Line{Item: it.Name, Quantity: n})
		quantity += n
		price += it.Price * n
	}

	if sess.IsEdit() {
		if err := s.repo.DeleteByID(ctx, sess.EditingBookingID, userID); err != nil {
			return nil, err
		}
	}

	b := &domain.Booking{
		UserID:   userID,
		Username: username,
		Date:     sess.Date,
		Lines:    lines,
		Quantity: quantity,
		Price:    price,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Printf("booking_confirmed id=%d user_id=%d date=%s quantity=%d price=%d", b.ID, userID, b.Date, quantity, price)
	s.notifyCreated(ctx, b)
	return b, nil
}

// catalogOrder returns the catalog items present in the draft, in catalog
// display order, so receipts and stored rows are deterministic.
func (s *Service) catalogOrder(sess *domain.BookingSession) []catalog.Item {
	out := make([]catalog.Item, 0, len(sess.Items))
	for _, cat := range s.catalog.Categories() {
		for _, it := range s.catalog.Items(cat) {
			if sess.Items[it.Name] > 0 {
				out = append(out, it)
			}
		}
	}
	return out
}

// Delete removes one of the caller's bookings. A booking owned by someone
// else reads as not found; nothing is deleted and no notification fires.
func (s *Service) Delete(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.repo.DeleteByID(ctx, id, userID); err != nil {
		return nil, mapNotFound(err)
	}

	log.Printf("booking_deleted id=%d user_id=%d date=%s", id, userID, b.Date)
	s.notifyCancelled(ctx, b)
	return b, nil
}

// GetOwned loads one booking scoped to its owner.
func (s *Service) GetOwned(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return b, nil
}

// EditDate moves a booking to a new day after re-validating every line
// against that day's availability, excluding the booking's own contribution
// so that moving within its former slot still succeeds.
func (s *Service) EditDate(ctx context.Context, id, userID int64, newDate string) (*domain.Booking, error) {
	b, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	for _, l := range b.Lines {
		free, err := s.avail.Available(ctx, l.Item, newDate, id)
		if err != nil {
			return nil, err
		}
		if free < l.Quantity {
			return nil, ErrNotAvailable
		}
	}

	if err := s.repo.UpdateDate(ctx, id, newDate); err != nil {
		return nil, mapNotFound(err)
	}
	log.Printf("booking_date_changed id=%d user_id=%d date=%s", id, userID, newDate)
	b.Date = newDate
	return b, nil
}

// ListMine returns the caller's active bookings, sweeping expired ones first.
func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	s.sweep(ctx)
	return s.repo.ListByUser(ctx, userID)
}

// ListAllBookings returns every active booking, sweeping expired ones first.
func (s *Service) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	s.sweep(ctx)
	return s.repo.ListAll(ctx)
}

// BusyDates returns the distinct dates that have at least one booking.
func (s *Service) BusyDates(ctx context.Context) ([]string, error) {
	s.sweep(ctx)
	return s.repo.DistinctDates(ctx)
}

// ArchiveMine returns the caller's archived bookings.
func (s *Service) ArchiveMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	s.sweep(ctx)
	return s.repo.ListArchiveByUser(ctx, userID)
}

// ListArchive returns the whole archive (reports API only).
func (s *Service) ListArchive(ctx context.Context) ([]domain.Booking, error) {
	s.sweep(ctx)
	return s.repo.ListArchive(ctx)
}

// Sweep moves every booking dated before today into the archive.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	today := time.Now().Format(domain.DateLayout)
	return s.repo.ArchiveExpired(ctx, today)
}

// sweep is the opportunistic variant run before listings: staleness is
// bounded by user activity, not by a timer, and a failure only means the
// listing may still show expired rows.
func (s *Service) sweep(ctx context.Context) {
	moved, err := s.Sweep(ctx)
	if err != nil {
		log.Printf("archive_sweep_failed error=%q", err)
		return
	}
	if moved > 0 {
		log.Printf("archive_sweep moved=%d", moved)
	}
}

func (s *Service) notifyCreated(ctx context.Context, b *domain.Booking) {
	if s.notifs != nil {
		if err := s.notifs.BookingCreated(ctx, b); err != nil {
			log.Printf("notify_failed event=created booking_id=%d error=%q", b.ID, err)
		}
	}
	if s.events != nil {
		s.events.Publish(EventCreated, b)
	}
}

func (s *Service) notifyCancelled(ctx context.Context, b *domain.Booking) {
	if s.notifs != nil {
		if err := s.notifs.BookingCancelled(ctx, b); err != nil {
			log.Printf("notify_failed event=cancelled booking_id=%d error=%q", b.ID, err)
		}
	}
	if s.events != nil {
		s.events.Publish(EventCancelled, b)
	}
}
