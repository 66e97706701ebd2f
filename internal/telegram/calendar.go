package telegram

import (
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rentalbot/internal/domain"
	"rentalbot/internal/modules/flow"
)

// Inline date picker. Navigation callbacks are handled entirely inside the
// adapter ("still selecting"); only a tapped day reaches the controller.
const (
	calendarPrefix = "cal:"
	calSelect      = "cal:sel:"    // cal:sel:2006-01-02
	calPrev        = "cal:prev:"   // cal:prev:2006-01
	calNext        = "cal:next:"   // cal:next:2006-01
	calIgnore      = "cal:ignore"
)

const monthLayout = "2006-01"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func currentMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthKeyboard renders one month: a navigation header, a weekday row and the
// day grid, padded with ignore buttons.
func monthKeyboard(month time.Time) tgbotapi.InlineKeyboardMarkup {
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthTag := month.Format(monthLayout)

	header := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("«", calPrev+monthTag),
		tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %d", monthNames[month.Month()-1], month.Year()), calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("»", calNext+monthTag),
	)

	weekdays := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Пн", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Вт", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Ср", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Чт", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Пт", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Сб", calIgnore),
		tgbotapi.NewInlineKeyboardButtonData("Вс", calIgnore),
	)

	rows := [][]tgbotapi.InlineKeyboardButton{header, weekdays}

	// Monday-first offset of the month's first day.
	offset := (int(month.Weekday()) + 6) % 7
	daysInMonth := month.AddDate(0, 1, -1).Day()

	row := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", calIgnore))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", day), calSelect+date.Format(domain.DateLayout)))
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", calIgnore))
		}
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// processCalendar resolves a calendar callback. Month navigation edits the
// message's keyboard in place and reports "still selecting".
func (b *Bot) processCalendar(cq *tgbotapi.CallbackQuery) (flow.Action, bool) {
	data := cq.Data
	switch {
	case strings.HasPrefix(data, calSelect):
		date := strings.TrimPrefix(data, calSelect)
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return flow.Action{Kind: flow.KindUnknown, Text: data}, true
		}
		return flow.Action{Kind: flow.KindDateSelected, Date: date, Text: data}, true

	case strings.HasPrefix(data, calPrev), strings.HasPrefix(data, calNext):
		tag := data[strings.LastIndex(data, ":")+1:]
		month, err := time.Parse(monthLayout, tag)
		if err != nil {
			return flow.Action{}, false
		}
		if strings.HasPrefix(data, calPrev) {
			month = month.AddDate(0, -1, 0)
		} else {
			month = month.AddDate(0, 1, 0)
		}
		edit := tgbotapi.NewEditMessageReplyMarkup(
			cq.Message.Chat.ID, cq.Message.MessageID, monthKeyboard(month))
		if _, err := b.api.Send(edit); err != nil {
			log.Printf("calendar_nav_failed error=%q", err)
		}
		return flow.Action{}, false

	default:
		return flow.Action{}, false
	}
}
