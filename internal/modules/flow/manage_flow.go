package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentalbot/internal/domain"
	"rentalbot/internal/modules/booking"
)

func (c *Controller) busyDates(ctx context.Context) []Reply {
	dates, err := c.bookings.BusyDates(ctx)
	if err != nil {
		return []Reply{text("Не удалось загрузить даты, попробуйте позже.")}
	}
	if len(dates) == 0 {
		return []Reply{text("Нет занятых дат.")}
	}
	return []Reply{text("Занятые даты:\n" + strings.Join(dates, "\n"))}
}

func report(header string, bookings []domain.Booking) Reply {
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, bk := range bookings {
		fmt.Fprintf(&b, "👤 *Пользователь:* %s\n📅 *Дата:* %s\n💵 *Сумма:* %d руб.\n————————————\n",
			bk.Username, bk.Date, bk.Price)
	}
	return markdown(b.String())
}

func (c *Controller) myBookings(ctx context.Context, userID int64) []Reply {
	list, err := c.bookings.ListMine(ctx, userID)
	if err != nil {
		return []Reply{text("Не удалось загрузить бронирования, попробуйте позже.")}
	}
	if len(list) == 0 {
		return []Reply{text("У вас нет активных бронирований.")}
	}
	return []Reply{report("📋 *Ваши бронирования:*", list)}
}

func (c *Controller) allBookings(ctx context.Context) []Reply {
	list, err := c.bookings.ListAllBookings(ctx)
	if err != nil {
		return []Reply{text("Не удалось загрузить бронирования, попробуйте позже.")}
	}
	if len(list) == 0 {
		return []Reply{text("Нет активных бронирований.")}
	}
	return []Reply{report("📋 *Все бронирования:*", list)}
}

func (c *Controller) archive(ctx context.Context, userID int64) []Reply {
	list, err := c.bookings.ArchiveMine(ctx, userID)
	if err != nil {
		return []Reply{text("Не удалось загрузить архив, попробуйте позже.")}
	}
	if len(list) == 0 {
		return []Reply{text("У вас нет архивных бронирований.")}
	}
	return []Reply{report("📋 *Ваши архивные бронирования:*", list)}
}

// bookingListReply builds the inline list used by the delete and edit entry
// points: one button per booking, labelled with its date and first items.
func bookingListReply(prompt, callback string, list []domain.Booking) Reply {
	var rows [][]Button
	for _, b := range list {
		rows = append(rows, []Button{{
			Label: fmt.Sprintf("%s - %s", b.Date, b.ShortEquipment(3)),
			Data:  fmt.Sprintf("%s:%d", callback, b.ID),
		}})
	}
	return Reply{Text: prompt, Buttons: rows, Inline: true}
}

func (c *Controller) beginDelete(ctx context.Context, userID int64, sess *domain.BookingSession) []Reply {
	list, err := c.bookings.ListMine(ctx, userID)
	if err != nil {
		return []Reply{text("Не удалось загрузить бронирования, попробуйте позже.")}
	}
	if len(list) == 0 {
		return []Reply{text("У вас нет активных бронирований.")}
	}
	sess.State = domain.StateChoosingDelete
	return []Reply{bookingListReply("Выберите бронирование для удаления:", CallbackDelete, list)}
}

func (c *Controller) choosingDelete(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindDeleteBooking:
		b, err := c.bookings.Delete(ctx, act.ID, userID)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				// Not-owner reads the same as not-found: no ownership leak.
				return []Reply{text("Бронирование с таким ID не найдено или оно принадлежит другому пользователю.")}
			}
			return []Reply{text("Не удалось удалить бронирование, попробуйте позже.")}
		}
		sess.Reset()
		return []Reply{menu(fmt.Sprintf("Бронирование на %s успешно удалено!", b.Date))}
	case KindCancel:
		sess.Reset()
		return []Reply{menu("Удаление отменено.")}
	default:
		return []Reply{text("Выберите бронирование из списка.")}
	}
}

func (c *Controller) beginEdit(ctx context.Context, userID int64, sess *domain.BookingSession) []Reply {
	list, err := c.bookings.ListMine(ctx, userID)
	if err != nil {
		return []Reply{text("Не удалось загрузить бронирования, попробуйте позже.")}
	}
	if len(list) == 0 {
		return []Reply{text("У вас нет активных бронирований для редактирования.")}
	}
	sess.State = domain.StateChoosingEdit
	return []Reply{bookingListReply("Выберите бронирование для редактирования:", CallbackEdit, list)}
}

func editActionReply() Reply {
	return Reply{
		Text:   "Что вы хотите изменить?",
		Inline: true,
		Buttons: [][]Button{
			{{Label: "📅 Изменить дату", Data: CallbackEditDate}},
			{{Label: "📦 Изменить оборудование", Data: CallbackEditEquipment}},
			{{Label: "❌ Отменить редактирование", Data: CallbackCancelEdit}},
		},
	}
}

func (c *Controller) choosingEdit(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindEditBooking:
		if _, err := c.bookings.GetOwned(ctx, act.ID, userID); err != nil {
			return []Reply{text("Бронирование с таким ID не найдено или оно принадлежит другому пользователю.")}
		}
		sess.EditingBookingID = act.ID
		sess.State = domain.StateChoosingEditAction
		return []Reply{editActionReply()}
	case KindCancel:
		sess.Reset()
		return []Reply{menu("Редактирование отменено.")}
	default:
		return []Reply{text("Выберите бронирование из списка.")}
	}
}

func (c *Controller) choosingEditAction(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindEditDate:
		sess.State = domain.StateEditingDate
		return []Reply{calendar("Выберите новую дату бронирования:")}
	case KindEditEquipment:
		b, err := c.bookings.GetOwned(ctx, sess.EditingBookingID, userID)
		if err != nil {
			sess.Reset()
			return []Reply{menu("Бронирование не найдено.")}
		}
		// The edit draft replaces the old equipment wholesale but keeps the
		// booking's date; availability checks exclude the booking itself.
		sess.Date = b.Date
		sess.State = domain.StateChoosingCategory
		return []Reply{c.categoriesReply(sess,
			"Теперь вы можете добавить новое оборудование. Старое оборудование будет заменено.\nВыберите категорию:")}
	case KindCancelEdit:
		sess.Reset()
		return []Reply{menu("Редактирование отменено.")}
	default:
		return []Reply{text("Используйте кнопки для выбора действия.")}
	}
}

func (c *Controller) editingDate(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindDateSelected:
		if pastDate(act.Date) {
			return []Reply{
				text("Ошибка! Нельзя выбрать прошедшую дату."),
				calendar("Выберите новую дату бронирования:"),
			}
		}
		_, err := c.bookings.EditDate(ctx, sess.EditingBookingID, userID, act.Date)
		if err != nil {
			if errors.Is(err, booking.ErrNotAvailable) {
				return []Reply{text("Оборудование уже занято на выбранную дату. Пожалуйста, выберите другую дату.")}
			}
			if errors.Is(err, booking.ErrNotFound) {
				sess.Reset()
				return []Reply{menu("Бронирование не найдено.")}
			}
			return []Reply{text("Не удалось изменить дату, попробуйте позже.")}
		}
		sess.Reset()
		return []Reply{menu(fmt.Sprintf("Дата бронирования успешно изменена на %s!", act.Date))}
	case KindCancelEdit, KindCancel:
		sess.Reset()
		return []Reply{menu("Редактирование отменено.")}
	default:
		return []Reply{calendar("Выберите новую дату бронирования:")}
	}
}
