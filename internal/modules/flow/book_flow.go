package flow

import (
	"context"
	"errors"
	"fmt"

	"rentalbot/internal/domain"
	"rentalbot/internal/modules/booking"
)

func (c *Controller) choosingDate(ctx context.Context, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindDateSelected:
		if pastDate(act.Date) {
			return []Reply{
				text("Ошибка! Нельзя выбрать прошедшую дату."),
				calendar("Выберите дату бронирования:"),
			}
		}
		sess.Date = act.Date
		sess.State = domain.StateChoosingCategory
		return []Reply{
			text(fmt.Sprintf("Вы выбрали дату: %s", act.Date)),
			c.categoriesReply(sess, "Выберите категорию оборудования:"),
		}
	case KindCancel:
		sess.Reset()
		return []Reply{menu("Бронирование отменено.")}
	default:
		return []Reply{calendar("Выберите дату бронирования:")}
	}
}

func (c *Controller) choosingCategory(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindSelect:
		if !c.catalog.HasCategory(act.Name) {
			return []Reply{text("Выберите категорию из списка.")}
		}
		sess.Category = act.Name
		sess.State = domain.StateChoosingItems
		return []Reply{c.itemsReply(ctx, sess)}
	case KindChangeDate:
		// Already chosen items survive the date change.
		sess.State = domain.StateChoosingDate
		return []Reply{calendar("Выберите дату бронирования:")}
	case KindCancel:
		sess.Reset()
		return []Reply{menu("Бронирование отменено.")}
	case KindCancelEdit:
		if sess.IsEdit() {
			sess.Reset()
			return []Reply{menu("Редактирование отменено.")}
		}
		return []Reply{text("Выберите категорию из списка.")}
	case KindDone:
		if sess.Empty() {
			return []Reply{text("Вы не выбрали ни одного оборудования.")}
		}
		sess.State = domain.StateConfirming
		return []Reply{c.confirmationReply(sess)}
	default:
		return []Reply{text("Выберите категорию из списка.")}
	}
}

func (c *Controller) choosingItems(ctx context.Context, userID int64, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindSelect:
		it, ok := c.catalog.Find(act.Name)
		if !ok || it.Category != sess.Category {
			return []Reply{text("Выберите оборудование из списка или нажмите 'Готово'.")}
		}
		return c.addItem(ctx, sess, act.Name)
	case KindBack:
		// Item mapping is preserved.
		sess.State = domain.StateChoosingCategory
		return []Reply{c.categoriesReply(sess, "Выберите категорию оборудования:")}
	case KindDone:
		if sess.Empty() {
			return []Reply{text("Вы не выбрали ни одного оборудования.")}
		}
		sess.State = domain.StateConfirming
		return []Reply{c.confirmationReply(sess)}
	default:
		return []Reply{text("Выберите оборудование из списка или нажмите 'Готово'.")}
	}
}

// addItem applies the availability guard: one more unit fits only if the
// day's remaining stock minus the draft's own claim is still positive. On
// rejection the session is untouched and the message states what remains.
func (c *Controller) addItem(ctx context.Context, sess *domain.BookingSession, name string) []Reply {
	free, err := c.avail.Available(ctx, name, sess.Date, sess.EditingBookingID)
	if err != nil {
		return []Reply{text("Не удалось проверить доступность, попробуйте еще раз.")}
	}

	remaining := free - sess.Quantity(name)
	if remaining <= 0 {
		if free <= 0 {
			return []Reply{
				text("Это оборудование уже занято на выбранную дату."),
				c.itemsReply(ctx, sess),
			}
		}
		return []Reply{
			text(fmt.Sprintf("Невозможно добавить больше %s. Доступно только %d шт.", name, free)),
			c.itemsReply(ctx, sess),
		}
	}

	have := sess.AddItem(name)
	return []Reply{
		text(fmt.Sprintf("Добавлено: %s (%d шт.)\nОсталось: %d шт.", name, have, free-have)),
		c.itemsReply(ctx, sess),
	}
}

func (c *Controller) confirming(ctx context.Context, userID int64, username string, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindConfirm:
		return c.confirm(ctx, userID, username, sess)
	case KindAddMore:
		sess.State = domain.StateChoosingCategory
		return []Reply{c.categoriesReply(sess, "Выберите категорию оборудования:")}
	case KindRemove:
		if sess.Empty() {
			return []Reply{text("Нет оборудования для удаления.")}
		}
		sess.State = domain.StateRemovingItems
		return []Reply{c.removeReply(sess)}
	case KindCancelEstimate:
		sess.Reset()
		return []Reply{menu("Смета отменена. Вы вернулись в главное меню.")}
	default:
		return []Reply{text("Используйте кнопки для выбора действия.")}
	}
}

func (c *Controller) confirm(ctx context.Context, userID int64, username string, sess *domain.BookingSession) []Reply {
	b, err := c.bookings.Confirm(ctx, userID, username, sess)
	if err != nil {
		if errors.Is(err, booking.ErrEmptyOrder) {
			return []Reply{text("Вы не выбрали ни одного оборудования.")}
		}
		return []Reply{menu("Не удалось сохранить бронирование, попробуйте позже.")}
	}
	sess.Reset()

	var lines []string
	for _, l := range b.Lines {
		it, _ := c.catalog.Find(l.Item)
		lines = append(lines, fmt.Sprintf("%s x%d (%d руб.)", l.Item, l.Quantity, it.Price*l.Quantity))
	}
	receipt := "Вы забронировали:\n"
	for _, l := range lines {
		receipt += l + "\n"
	}
	receipt += fmt.Sprintf("Итого: %d руб.", b.Price)

	return []Reply{
		text(receipt),
		menu("Бронирование завершено, спасибо!"),
	}
}

func (c *Controller) removingItems(ctx context.Context, sess *domain.BookingSession, act Action) []Reply {
	switch act.Kind {
	case KindSelect:
		if sess.Quantity(act.Name) == 0 {
			return []Reply{text("Используйте кнопки для выбора оборудования.")}
		}
		left := sess.RemoveItem(act.Name)
		var note Reply
		if left > 0 {
			note = text(fmt.Sprintf("Удалено: %s (%d шт.)", act.Name, left))
		} else {
			note = text(fmt.Sprintf("Оборудование %s полностью удалено", act.Name))
		}
		return []Reply{note, c.removeReply(sess)}
	case KindBack:
		sess.State = domain.StateConfirming
		return []Reply{c.confirmationReply(sess)}
	default:
		return []Reply{text("Используйте кнопки для выбора оборудования.")}
	}
}
