package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalbot/internal/catalog"
	"rentalbot/internal/domain"
	"rentalbot/internal/session"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Confirm(ctx context.Context, userID int64, username string, sess *domain.BookingSession) (*domain.Booking, error) {
	args := m.Called(ctx, userID, username, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetOwned(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) EditDate(ctx context.Context, id, userID int64, newDate string) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID, newDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingService) BusyDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingService) ArchiveMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Available(ctx context.Context, item, date string, excludeID int64) (int, error) {
	args := m.Called(ctx, item, date, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockAvailabilityService) BookedByDate(ctx context.Context, date string, excludeID int64) (map[string]int, error) {
	args := m.Called(ctx, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func flowCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Group{
		{Name: "Свет", Items: []catalog.Item{
			{Name: "Моноблок", Stock: 3, Price: 100},
			{Name: "Софтбокс", Stock: 2, Price: 50},
		}},
		{Name: "Связь", Items: []catalog.Item{
			{Name: "Рация", Stock: 4, Price: 30},
		}},
	})
}

type fixture struct {
	controller *Controller
	sessions   *session.Store
	bookings   *MockBookingService
	avail      *MockAvailabilityService
}

func newFixture() *fixture {
	f := &fixture{
		sessions: session.NewStore(),
		bookings: new(MockBookingService),
		avail:    new(MockAvailabilityService),
	}
	f.controller = NewController(flowCatalog(), f.sessions, f.bookings, f.avail)
	return f
}

func (f *fixture) session(userID int64) *domain.BookingSession {
	return f.sessions.Get(userID)
}

const futureDate = "2099-06-15"

func TestHandle_PastDateRejected(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingDate

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindDateSelected, Date: "2020-01-01"})

	require.Len(t, replies, 2)
	assert.Equal(t, "Ошибка! Нельзя выбрать прошедшую дату.", replies[0].Text)
	assert.True(t, replies[1].Calendar)
	assert.Equal(t, domain.StateChoosingDate, sess.State, "a rejected date leaves the user picking a date")
	assert.Empty(t, sess.Date)
}

func TestHandle_ValidDateAdvances(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingDate

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindDateSelected, Date: futureDate})

	require.Len(t, replies, 2)
	assert.Equal(t, domain.StateChoosingCategory, sess.State)
	assert.Equal(t, futureDate, sess.Date)
	assert.Contains(t, replies[0].Text, futureDate)
}

func TestHandle_UnknownInputKeepsState(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingCategory
	sess.Date = futureDate

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindUnknown, Text: "что-то"})

	require.Len(t, replies, 1)
	assert.Equal(t, "Выберите категорию из списка.", replies[0].Text)
	assert.Equal(t, domain.StateChoosingCategory, sess.State)
}

func TestHandle_AddItemWithinStock(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingItems
	sess.Date = futureDate
	sess.Category = "Свет"

	f.avail.On("Available", mock.Anything, "Моноблок", futureDate, int64(0)).Return(3, nil)
	f.avail.On("BookedByDate", mock.Anything, futureDate, int64(0)).Return(map[string]int{}, nil)

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindSelect, Name: "Моноблок"})

	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "Добавлено: Моноблок (1 шт.)")
	assert.Contains(t, replies[0].Text, "Осталось: 2 шт.")
	assert.Equal(t, 1, sess.Quantity("Моноблок"))
}

func TestHandle_AddItemRejectedWhenDraftExhaustsStock(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingItems
	sess.Date = futureDate
	sess.Category = "Свет"
	sess.Items = map[string]int{"Софтбокс": 2}

	f.avail.On("Available", mock.Anything, "Софтбокс", futureDate, int64(0)).Return(2, nil)
	f.avail.On("BookedByDate", mock.Anything, futureDate, int64(0)).Return(map[string]int{}, nil)

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindSelect, Name: "Софтбокс"})

	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "Невозможно добавить больше Софтбокс. Доступно только 2 шт.")
	assert.Equal(t, 2, sess.Quantity("Софтбокс"), "rejection must not change the draft")
}

func TestHandle_AddItemRejectedWhenDayFullyBooked(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingItems
	sess.Date = futureDate
	sess.Category = "Свет"

	f.avail.On("Available", mock.Anything, "Софтбокс", futureDate, int64(0)).Return(0, nil)
	f.avail.On("BookedByDate", mock.Anything, futureDate, int64(0)).Return(map[string]int{"Софтбокс": 2}, nil)

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindSelect, Name: "Софтбокс"})

	require.Len(t, replies, 2)
	assert.Equal(t, "Это оборудование уже занято на выбранную дату.", replies[0].Text)
	assert.Equal(t, 0, sess.Quantity("Софтбокс"))
}

func TestHandle_RemoveLastUnitDeletesEntry(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateRemovingItems
	sess.Date = futureDate
	sess.Items = map[string]int{"Рация": 1}

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindSelect, Name: "Рация"})

	require.Len(t, replies, 2)
	assert.Equal(t, "Оборудование Рация полностью удалено", replies[0].Text)
	_, present := sess.Items["Рация"]
	assert.False(t, present, "a zero-quantity entry must not linger in the draft")
}

func TestHandle_DoneWithEmptyDraftReprompts(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingCategory
	sess.Date = futureDate

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindDone})

	require.Len(t, replies, 1)
	assert.Equal(t, "Вы не выбрали ни одного оборудования.", replies[0].Text)
	assert.Equal(t, domain.StateChoosingCategory, sess.State)
}

func TestHandle_HappyPathBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.avail.On("Available", mock.Anything, "Моноблок", futureDate, int64(0)).Return(3, nil)
	f.avail.On("BookedByDate", mock.Anything, futureDate, int64(0)).Return(map[string]int{}, nil)
	f.bookings.On("Confirm", mock.Anything, int64(1), "ivan", mock.Anything).Return(&domain.Booking{
		ID:       10,
		UserID:   1,
		Date:     futureDate,
		Lines:    []domain.Line{{Item: "Моноблок", Quantity: 1}},
		Quantity: 1,
		Price:    100,
	}, nil)

	f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindBeginBooking})
	f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindDateSelected, Date: futureDate})
	f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindSelect, Name: "Свет"})
	f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindSelect, Name: "Моноблок"})
	f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindDone})

	sess := f.session(1)
	require.Equal(t, domain.StateConfirming, sess.State)

	replies := f.controller.Handle(ctx, 1, "ivan", Action{Kind: KindConfirm})

	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "Вы забронировали:")
	assert.Contains(t, replies[0].Text, "Моноблок x1 (100 руб.)")
	assert.Contains(t, replies[0].Text, "Итого: 100 руб.")
	assert.True(t, replies[1].MainMenu)
	assert.Equal(t, domain.StateIdle, sess.State, "a confirmed booking resets the session")
	assert.True(t, sess.Empty())
}

func TestHandle_CancelEstimateResets(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateConfirming
	sess.Date = futureDate
	sess.Items = map[string]int{"Рация": 2}

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindCancelEstimate})

	require.Len(t, replies, 1)
	assert.True(t, replies[0].MainMenu)
	assert.Equal(t, domain.StateIdle, sess.State)
	assert.True(t, sess.Empty())
	f.bookings.AssertNotCalled(t, "Confirm")
}

func TestHandle_ItemKeyboardSubtractsBookedAndDraft(t *testing.T) {
	f := newFixture()
	sess := f.session(1)
	sess.State = domain.StateChoosingCategory
	sess.Date = futureDate
	sess.Items = map[string]int{"Моноблок": 1}

	f.avail.On("BookedByDate", mock.Anything, futureDate, int64(0)).Return(map[string]int{"Моноблок": 1, "Софтбокс": 5}, nil)

	replies := f.controller.Handle(context.Background(), 1, "ivan", Action{Kind: KindSelect, Name: "Свет"})

	require.Len(t, replies, 1)
	require.Len(t, replies[0].Buttons, 3) // two items plus the control row
	assert.Equal(t, "Моноблок (1 шт.)", replies[0].Buttons[0][0].Label)
	assert.Equal(t, "Софтбокс (0 шт.)", replies[0].Buttons[1][0].Label, "oversold stock clamps to zero")
}
