package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rentalbot/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Migrate creates the bookings and archive_bookings tables.
func (r *BookingRepository) Migrate() error {
	return r.db.AutoMigrate(&bookingModel{}, &archivedBookingModel{})
}

type bookingModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64  `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
	Date      string `gorm:"column:date"`
	Equipment string `gorm:"column:equipment"`
	Quantity  int    `gorm:"column:quantity"`
	Price     int    `gorm:"column:price"`
}

func (bookingModel) TableName() string { return "bookings" }

// archive_bookings has the same columns as bookings; rows move there verbatim
// once their date has passed and are never mutated again.
type archivedBookingModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64  `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
	Date      string `gorm:"column:date"`
	Equipment string `gorm:"column:equipment"`
	Quantity  int    `gorm:"column:quantity"`
	Price     int    `gorm:"column:price"`
}

func (archivedBookingModel) TableName() string { return "archive_bookings" }

// encodeLines renders line entries in the storage format: one "<item> x<n>"
// per line. The format is kept for parity with pre-existing rows.
func encodeLines(lines []domain.Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", l.Item, l.Quantity))
	}
	return strings.Join(parts, "\n")
}

func decodeLines(s string) []domain.Line {
	var lines []domain.Line
	for _, raw := range strings.Split(s, "\n") {
		i := strings.LastIndex(raw, " x")
		if i < 0 {
			continue
		}
		n, err := strconv.Atoi(raw[i+2:])
		if err != nil {
			continue
		}
		lines = append(lines, domain.Line{Item: raw[:i], Quantity: n})
	}
	return lines
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:       m.ID,
		UserID:   m.UserID,
		Username: m.Username,
		Date:     m.Date,
		Lines:    decodeLines(m.Equipment),
		Quantity: m.Quantity,
		Price:    m.Price,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		UserID:    b.UserID,
		Username:  b.Username,
		Date:      b.Date,
		Equipment: encodeLines(b.Lines),
		Quantity:  b.Quantity,
		Price:     b.Price,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	m.ID = 0
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	b.ID = m.ID
	return nil
}

// GetByIDForUser loads one booking scoped to its owner. A booking owned by
// someone else reads as not found.
func (r *BookingRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// DeleteByID removes a booking scoped to its owner.
func (r *BookingRepository) DeleteByID(ctx context.Context, id, userID int64) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("date, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// ListByDate returns the active bookings of one day. excludeID removes one
// booking's own contribution, used when re-validating an edit against itself.
func (r *BookingRepository) ListByDate(ctx context.Context, date string, excludeID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("date = ?", date)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var ms []bookingModel
	tx := q.Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) DistinctDates(ctx context.Context) ([]string, error) {
	var dates []string
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Distinct("date").Order("date").Pluck("date", &dates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return dates, nil
}

// UpdateDate moves a booking to another day in place, keeping its identity.
func (r *BookingRepository) UpdateDate(ctx context.Context, id int64, date string) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Update("date", date)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveExpired moves every booking dated strictly before today into the
// archive table and deletes it from the active one, in a single transaction.
// Running it again with no new past bookings is a no-op.
func (r *BookingRepository) ArchiveExpired(ctx context.Context, today string) (int64, error) {
	var moved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
INSERT INTO archive_bookings (user_id, username, date, equipment, quantity, price)
SELECT user_id, username, date, equipment, quantity, price
FROM bookings
WHERE date < ?`, today)
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected

		return tx.Where("date < ?", today).Delete(&bookingModel{}).Error
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

func (r *BookingRepository) ListArchiveByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var ms []archivedBookingModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(bookingModel(m)))
	}
	return out, nil
}

func (r *BookingRepository) ListArchive(ctx context.Context) ([]domain.Booking, error) {
	var ms []archivedBookingModel
	tx := r.db.WithContext(ctx).Order("date, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(bookingModel(m)))
	}
	return out, nil
}

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
