package flow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"rentalbot/internal/catalog"
	"rentalbot/internal/domain"
	"rentalbot/internal/session"
)

// Controller drives one user's booking session through its states. The
// transport delivers one update at a time and waits for the replies, so there
// is no intra-session concurrency to guard against.
type Controller struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	bookings BookingService
	avail    AvailabilityService
}

func NewController(c *catalog.Catalog, sessions *session.Store, bookings BookingService, avail AvailabilityService) *Controller {
	return &Controller{catalog: c, sessions: sessions, bookings: bookings, avail: avail}
}

// Handle consumes one action and returns the replies to render. Unrecognized
// input never changes state: the user is re-prompted in place.
func (c *Controller) Handle(ctx context.Context, userID int64, username string, act Action) []Reply {
	sess := c.sessions.Get(userID)

	switch sess.State {
	case domain.StateChoosingDate:
		return c.choosingDate(ctx, sess, act)
	case domain.StateChoosingCategory:
		return c.choosingCategory(ctx, userID, sess, act)
	case domain.StateChoosingItems:
		return c.choosingItems(ctx, userID, sess, act)
	case domain.StateConfirming:
		return c.confirming(ctx, userID, username, sess, act)
	case domain.StateRemovingItems:
		return c.removingItems(ctx, sess, act)
	case domain.StateChoosingDelete:
		return c.choosingDelete(ctx, userID, sess, act)
	case domain.StateChoosingEdit:
		return c.choosingEdit(ctx, userID, sess, act)
	case domain.StateChoosingEditAction:
		return c.choosingEditAction(ctx, userID, sess, act)
	case domain.StateEditingDate:
		return c.editingDate(ctx, userID, sess, act)
	default:
		return c.idle(ctx, userID, sess, act)
	}
}

func (c *Controller) idle(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindStart:
		return []Reply{menu("Привет! Я бот для бронирования оборудования. Используйте кнопки ниже:")}
	case KindBeginBooking:
		sess.Reset()
		sess.State = domain.StateChoosingDate
		return []Reply{calendar("Выберите дату бронирования:")}
	case KindBusyDates:
		return c.busyDates(ctx)
	case KindMyBookings:
		return c.myBookings(ctx, userID)
	case KindAllBookings:
		return c.allBookings(ctx)
	case KindArchive:
		return c.archive(ctx, userID)
	case KindBeginDelete:
		return c.beginDelete(ctx, userID, sess)
	case KindBeginEdit:
		return c.beginEdit(ctx, userID, sess)
	default:
		log.Printf("flow_unknown_input user_id=%d state=%s text=%q", userID, sess.State, act.Text)
		return []Reply{menu("Используйте кнопки меню.")}
	}
}

// today returns the current calendar day in the bot's date format.
func today() string {
	return time.Now().Format(domain.DateLayout)
}

// pastDate reports whether date is strictly before today. Dates are
// YYYY-MM-DD strings, so string comparison is calendar comparison.
func pastDate(date string) bool {
	return date < today()
}

// categoriesReply builds the category keyboard. In the edit-equipment flow
// the bottom row only offers cancelling the edit.
func (c *Controller) categoriesReply(sess *domain.BookingSession, prompt string) Reply {
	var rows [][]Button
	for _, cat := range c.catalog.Categories() {
		rows = append(rows, []Button{{Label: cat}})
	}
	if sess.IsEdit() {
		rows = append(rows, []Button{{Label: BtnCancelEdit}})
	} else {
		rows = append(rows, []Button{
			{Label: BtnChangeDate}, {Label: BtnCancel}, {Label: BtnDone},
		})
	}
	return Reply{Text: prompt, Buttons: rows}
}

// itemsReply builds the item keyboard for the active category, labelling each
// item with the units still free after both stored bookings and the current
// draft are subtracted. Negative remainders (lost races) display as zero.
func (c *Controller) itemsReply(ctx context.Context, sess *domain.BookingSession) Reply {
	booked, err := c.avail.BookedByDate(ctx, sess.Date, sess.EditingBookingID)
	if err != nil {
		log.Printf("availability_failed date=%s error=%q", sess.Date, err)
		booked = map[string]int{}
	}

	var rows [][]Button
	for _, it := range c.catalog.Items(sess.Category) {
		free := it.Stock - booked[it.Name] - sess.Quantity(it.Name)
		if free < 0 {
			free = 0
		}
		rows = append(rows, []Button{{Label: fmt.Sprintf("%s (%d шт.)", it.Name, free)}})
	}
	rows = append(rows, []Button{{Label: BtnBack}, {Label: BtnDone}})
	return Reply{Text: "Выберите оборудование:", Buttons: rows}
}

// confirmationReply presents the draft with per-line and total prices.
func (c *Controller) confirmationReply(sess *domain.BookingSession) Reply {
	keyboard := [][]Button{
		{{Label: BtnConfirm}},
		{{Label: BtnAddMore}},
		{{Label: BtnRemove}},
		{{Label: BtnCancelEstimate}},
	}

	if sess.Empty() {
		return Reply{Text: "Вы не выбрали ни одного оборудования.", Buttons: keyboard}
	}

	total := 0
	var lines []string
	for _, it := range c.draftItems(sess) {
		n := sess.Quantity(it.Name)
		linePrice := it.Price * n
		total += linePrice
		lines = append(lines, fmt.Sprintf("%s x%d (%d руб.)", it.Name, n, linePrice))
	}

	return Reply{
		Text: fmt.Sprintf("Текущий заказ:\n%s\n\n*Итого: %d руб.*\n\nВыберите действие:",
			strings.Join(lines, "\n"), total),
		Markdown: true,
		Buttons:  keyboard,
	}
}

// removeReply lists the draft's items for removal.
func (c *Controller) removeReply(sess *domain.BookingSession) Reply {
	var rows [][]Button
	for _, it := range c.draftItems(sess) {
		rows = append(rows, []Button{{Label: fmt.Sprintf("%s (%d шт.)", it.Name, sess.Quantity(it.Name))}})
	}
	rows = append(rows, []Button{{Label: BtnBack}})
	return Reply{Text: "Выберите оборудование для удаления:", Buttons: rows}
}

// draftItems returns the catalog items present in the draft, in catalog
// display order.
func (c *Controller) draftItems(sess *domain.BookingSession) []catalog.Item {
	var out []catalog.Item
	for _, cat := range c.catalog.Categories() {
		for _, it := range c.catalog.Items(cat) {
			if sess.Quantity(it.Name) > 0 {
				out = append(out, it)
			}
		}
	}
	return out
}
