// Package telegram connects the conversation bot to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oksasatya/superstar-bot/internal/conversation"
)

// API is the subset of *tgbotapi.BotAPI used here.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Transport renders conversation replies as Telegram messages.
type Transport struct {
	api API
}

func NewTransport(api API) *Transport {
	return &Transport{api: api}
}

// Deliver sends r.Text with its reply keyboard. A web app link goes out as a
// second message because a message carries a single markup.
func (t *Transport) Deliver(_ context.Context, chatID int64, r conversation.Reply) error {
	if r.Text != "" {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		if len(r.Keyboard) > 0 {
			msg.ReplyMarkup = replyKeyboard(r.Keyboard)
		} else {
			msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		}
		if _, err := t.api.Send(msg); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	if r.WebAppURL != "" {
		msg := tgbotapi.NewMessage(chatID, conversation.BtnOpenWebApp)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(conversation.BtnOpenWebApp, r.WebAppURL)),
		)
		if _, err := t.api.Send(msg); err != nil {
			return fmt.Errorf("send web app link: %w", err)
		}
	}
	return nil
}

func (t *Transport) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	kb := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		kb = append(kb, buttons)
	}
	m := tgbotapi.NewReplyKeyboard(kb...)
	m.ResizeKeyboard = true
	return m
}

var _ conversation.Transport = (*Transport)(nil)
