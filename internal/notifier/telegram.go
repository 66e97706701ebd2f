package notifier

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rentalbot/internal/catalog"
	"rentalbot/internal/domain"
)

// Telegram posts booking announcements to the shared notification channel.
// Delivery is best-effort: the booking service logs a failure and moves on,
// with no retries and nothing surfaced to the user flow.
type Telegram struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	catalog *catalog.Catalog
}

func NewTelegram(api *tgbotapi.BotAPI, chatID int64, c *catalog.Catalog) *Telegram {
	return &Telegram{api: api, chatID: chatID, catalog: c}
}

func (t *Telegram) BookingCreated(ctx context.Context, b *domain.Booking) error {
	var lines []string
	for _, l := range b.Lines {
		it, _ := t.catalog.Find(l.Item)
		lines = append(lines, fmt.Sprintf("%s x%d (%d руб.)", l.Item, l.Quantity, it.Price*l.Quantity))
	}

	text := fmt.Sprintf(
		"📢 *Новое бронирование!*\n\n📅 *Дата:* %s\n👤 *Пользователь:* @%s\n📦 *Оборудование:*\n%s\n💵 *Итого:* %d руб.",
		b.Date, b.Username, strings.Join(lines, "\n"), b.Price,
	)
	return t.send(text)
}

func (t *Telegram) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	var lines []string
	for _, l := range b.Lines {
		lines = append(lines, fmt.Sprintf("%s x%d", l.Item, l.Quantity))
	}

	text := fmt.Sprintf(
		"❌ *Бронирование отменено!*\n\n📅 *Дата:* %s\n👤 *Пользователь:* @%s\n📦 *Оборудование:* %s\n\nОборудование снова доступно для бронирования! 🎉",
		b.Date, b.Username, strings.Join(lines, ", "),
	)
	return t.send(text)
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.api.Send(msg)
	return err
}
