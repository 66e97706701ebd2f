package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rentalbot/internal/modules/flow"
)

// Bot is the transport adapter: it turns Telegram updates into flow Actions
// and renders flow Replies back into messages and keyboards. All workflow
// decisions live in the flow controller; nothing here touches the store.
type Bot struct {
	api  *tgbotapi.BotAPI
	flow *flow.Controller
}

func New(api *tgbotapi.BotAPI, controller *flow.Controller) *Bot {
	return &Bot{api: api, flow: controller}
}

// Run consumes updates by long polling until the context is cancelled.
// Updates are processed one at a time to completion, which is all the
// serialization the per-user session model needs.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("bot_started username=%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	act := parseText(msg.Text)
	replies := b.flow.Handle(ctx, msg.From.ID, displayName(msg.From), act)
	b.send(msg.Chat.ID, replies)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.Printf("callback_ack_failed error=%q", err)
	}
	if cq.Message == nil {
		return
	}

	if strings.HasPrefix(cq.Data, calendarPrefix) {
		// Month navigation is resolved inside the adapter; the controller
		// only ever sees a final date.
		act, selected := b.processCalendar(cq)
		if !selected {
			return
		}
		replies := b.flow.Handle(ctx, cq.From.ID, displayName(cq.From), act)
		b.send(cq.Message.Chat.ID, replies)
		return
	}

	act := parseCallback(cq.Data)
	replies := b.flow.Handle(ctx, cq.From.ID, displayName(cq.From), act)
	b.send(cq.Message.Chat.ID, replies)
}

// textActions maps fixed button labels to action kinds.
var textActions = map[string]flow.Kind{
	"/start":               flow.KindStart,
	flow.BtnBook:           flow.KindBeginBooking,
	flow.BtnBusyDates:      flow.KindBusyDates,
	flow.BtnMyBookings:     flow.KindMyBookings,
	flow.BtnAllBookings:    flow.KindAllBookings,
	flow.BtnArchive:        flow.KindArchive,
	flow.BtnDelete:         flow.KindBeginDelete,
	flow.BtnEdit:           flow.KindBeginEdit,
	flow.BtnBack:           flow.KindBack,
	flow.BtnDone:           flow.KindDone,
	flow.BtnCancel:         flow.KindCancel,
	flow.BtnChangeDate:     flow.KindChangeDate,
	flow.BtnConfirm:        flow.KindConfirm,
	flow.BtnAddMore:        flow.KindAddMore,
	flow.BtnRemove:         flow.KindRemove,
	flow.BtnCancelEstimate: flow.KindCancelEstimate,
	flow.BtnCancelEdit:     flow.KindCancelEdit,
}

func parseText(text string) flow.Action {
	if kind, ok := textActions[text]; ok {
		return flow.Action{Kind: kind, Text: text}
	}
	// Item and category buttons carry an availability suffix: "600x (2 шт.)".
	name := text
	if strings.HasSuffix(name, "шт.)") {
		if i := strings.LastIndex(name, " ("); i > 0 {
			name = name[:i]
		}
	}
	if name == "" {
		return flow.Action{Kind: flow.KindUnknown, Text: text}
	}
	return flow.Action{Kind: flow.KindSelect, Name: name, Text: text}
}

func parseCallback(data string) flow.Action {
	switch data {
	case flow.CallbackEditDate:
		return flow.Action{Kind: flow.KindEditDate, Text: data}
	case flow.CallbackEditEquipment:
		return flow.Action{Kind: flow.KindEditEquipment, Text: data}
	case flow.CallbackCancelEdit:
		return flow.Action{Kind: flow.KindCancelEdit, Text: data}
	}

	prefix, rest, ok := strings.Cut(data, ":")
	if ok {
		if id, err := strconv.ParseInt(rest, 10, 64); err == nil {
			switch prefix {
			case flow.CallbackDelete:
				return flow.Action{Kind: flow.KindDeleteBooking, ID: id, Text: data}
			case flow.CallbackEdit:
				return flow.Action{Kind: flow.KindEditBooking, ID: id, Text: data}
			}
		}
	}
	// Stale or foreign callback: invalid input, re-prompted by the flow.
	return flow.Action{Kind: flow.KindUnknown, Text: data}
}

func (b *Bot) send(chatID int64, replies []flow.Reply) {
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		if r.Markdown {
			msg.ParseMode = tgbotapi.ModeMarkdown
		}
		switch {
		case r.Calendar:
			msg.ReplyMarkup = monthKeyboard(currentMonth())
		case r.MainMenu:
			msg.ReplyMarkup = mainMenuKeyboard()
		case r.Inline:
			msg.ReplyMarkup = inlineKeyboard(r.Buttons)
		case len(r.Buttons) > 0:
			msg.ReplyMarkup = replyKeyboard(r.Buttons)
		}
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("send_failed chat_id=%d error=%q", chatID, err)
		}
	}
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnBook)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnBusyDates)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnMyBookings)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnAllBookings)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnDelete)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnEdit)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(flow.BtnArchive)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func replyKeyboard(rows [][]flow.Button) tgbotapi.ReplyKeyboardMarkup {
	var kbRows [][]tgbotapi.KeyboardButton
	for _, row := range rows {
		var kbRow []tgbotapi.KeyboardButton
		for _, btn := range row {
			kbRow = append(kbRow, tgbotapi.NewKeyboardButton(btn.Label))
		}
		kbRows = append(kbRows, kbRow)
	}
	kb := tgbotapi.NewReplyKeyboard(kbRows...)
	kb.ResizeKeyboard = true
	return kb
}

func inlineKeyboard(rows [][]flow.Button) tgbotapi.InlineKeyboardMarkup {
	var kbRows [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var kbRow []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		kbRows = append(kbRows, kbRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
