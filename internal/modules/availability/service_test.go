package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalbot/internal/catalog"
	"rentalbot/internal/domain"
)

type MockBookingLister struct {
	mock.Mock
}

func (m *MockBookingLister) ListByDate(ctx context.Context, date string, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Group{
		{Name: "Свет", Items: []catalog.Item{
			{Name: "600x", Stock: 2, Price: 3000},
			{Name: "60x", Stock: 3, Price: 900},
		}},
	})
}

func TestAvailable_SubtractsBookedQuantity(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	lister.On("ListByDate", mock.Anything, "2030-05-01", int64(0)).Return([]domain.Booking{
		{Lines: []domain.Line{{Item: "600x", Quantity: 1}}},
		{Lines: []domain.Line{{Item: "600x", Quantity: 1}, {Item: "60x", Quantity: 2}}},
	}, nil)

	free, err := s.Available(context.Background(), "600x", "2030-05-01", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, free)

	free, err = s.Available(context.Background(), "60x", "2030-05-01", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, free)
}

func TestAvailable_NoBookingsMeansFullStock(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	lister.On("ListByDate", mock.Anything, "2030-05-01", int64(0)).Return([]domain.Booking{}, nil)

	free, err := s.Available(context.Background(), "60x", "2030-05-01", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, free)
}

func TestAvailable_UnknownItem(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	_, err := s.Available(context.Background(), "нет такого", "2030-05-01", 0)
	assert.ErrorIs(t, err, ErrUnknownItem)
	lister.AssertNotCalled(t, "ListByDate")
}

func TestAvailable_ExcludesOwnBooking(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	// With booking 7 excluded only the other booking's unit counts.
	lister.On("ListByDate", mock.Anything, "2030-05-01", int64(7)).Return([]domain.Booking{
		{ID: 12, Lines: []domain.Line{{Item: "600x", Quantity: 1}}},
	}, nil)

	free, err := s.Available(context.Background(), "600x", "2030-05-01", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, free)
}

func TestAvailable_CanGoNegativeAfterLostRace(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	// An external write pushed the day past stock; the calculator reports
	// the truth and leaves clamping to the caller.
	lister.On("ListByDate", mock.Anything, "2030-05-01", int64(0)).Return([]domain.Booking{
		{Lines: []domain.Line{{Item: "600x", Quantity: 3}}},
	}, nil)

	free, err := s.Available(context.Background(), "600x", "2030-05-01", 0)
	require.NoError(t, err)
	assert.Equal(t, -1, free)
}

func TestBookedByDate_SumsAcrossBookings(t *testing.T) {
	lister := new(MockBookingLister)
	s := NewService(testCatalog(), lister)

	lister.On("ListByDate", mock.Anything, "2030-05-01", int64(0)).Return([]domain.Booking{
		{Lines: []domain.Line{{Item: "600x", Quantity: 1}, {Item: "60x", Quantity: 1}}},
		{Lines: []domain.Line{{Item: "60x", Quantity: 2}}},
	}, nil)

	booked, err := s.BookedByDate(context.Background(), "2030-05-01", 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"600x": 1, "60x": 3}, booked)
}
