package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oksasatya/superstar-bot/internal/conversation"
)

type fakeAPI struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	err       error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requested = append(f.requested, c)
	return &tgbotapi.APIResponse{Ok: f.err == nil}, f.err
}

func TestDeliverWithKeyboardAndWebApp(t *testing.T) {
	api := &fakeAPI{}
	tr := NewTransport(api)
	err := tr.Deliver(context.Background(), 42, conversation.Reply{
		Text:      "hi",
		Keyboard:  [][]string{{"a", "b"}, {"c"}},
		WebAppURL: "https://app.test",
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(api.sent) != 2 {
		t.Fatalf("sent %d messages", len(api.sent))
	}
	msg := api.sent[0].(tgbotapi.MessageConfig)
	if msg.ChatID != 42 || msg.Text != "hi" {
		t.Fatalf("msg = %+v", msg)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || len(kb.Keyboard) != 2 || len(kb.Keyboard[0]) != 2 || kb.Keyboard[1][0].Text != "c" {
		t.Fatalf("keyboard = %+v", msg.ReplyMarkup)
	}
	link := api.sent[1].(tgbotapi.MessageConfig)
	inline, ok := link.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || inline.InlineKeyboard[0][0].URL == nil || *inline.InlineKeyboard[0][0].URL != "https://app.test" {
		t.Fatalf("web app button = %+v", link.ReplyMarkup)
	}
}

func TestDeliverWithoutKeyboardRemovesIt(t *testing.T) {
	api := &fakeAPI{}
	_ = NewTransport(api).Deliver(context.Background(), 1, conversation.Reply{Text: "bye"})
	msg := api.sent[0].(tgbotapi.MessageConfig)
	if _, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardRemove); !ok {
		t.Fatalf("markup = %T", msg.ReplyMarkup)
	}
}

func TestDeleteMessage(t *testing.T) {
	api := &fakeAPI{}
	if err := NewTransport(api).DeleteMessage(context.Background(), 5, 99); err != nil {
		t.Fatal(err)
	}
	del := api.requested[0].(tgbotapi.DeleteMessageConfig)
	if del.ChatID != 5 || del.MessageID != 99 {
		t.Fatalf("delete = %+v", del)
	}
	api.err = errors.New("message too old")
	if err := NewTransport(api).DeleteMessage(context.Background(), 5, 99); err == nil {
		t.Fatal("expected error")
	}
}

func TestEventFromUpdate(t *testing.T) {
	ev, ok := EventFromUpdate(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7, Text: "/start", Chat: &tgbotapi.Chat{ID: 11},
	}})
	if !ok || ev.ChatID != 11 || ev.MessageID != 7 || ev.Text != "/start" {
		t.Fatalf("event = %+v ok=%v", ev, ok)
	}
	for _, upd := range []tgbotapi.Update{
		{},
		{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}}},
		{EditedMessage: &tgbotapi.Message{Text: "x", Chat: &tgbotapi.Chat{ID: 1}}},
	} {
		if _, ok := EventFromUpdate(upd); ok {
			t.Errorf("update %+v should be skipped", upd)
		}
	}
}
