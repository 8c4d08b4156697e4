package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/conversation"
)

const defaultPollTimeout = 60

// Poller long-polls Telegram and hands text messages to a Dispatcher, which
// keeps each chat's turns in arrival order.
type Poller struct {
	Bot     *tgbotapi.BotAPI
	Handler conversation.EventHandler
	Logger  *logrus.Logger
	Workers int
}

func NewPoller(bot *tgbotapi.BotAPI, h conversation.EventHandler, logger *logrus.Logger, workers int) *Poller {
	return &Poller{Bot: bot, Handler: h, Logger: logger, Workers: workers}
}

// Run blocks until ctx is done, then waits for queued turns to finish.
func (p *Poller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = defaultPollTimeout
	updates := p.Bot.GetUpdatesChan(u)
	p.Logger.WithField("bot", p.Bot.Self.UserName).Info("telegram polling started")

	d := conversation.NewDispatcher(p.Handler, p.Logger, p.Workers)
	d.Start()
	defer d.Close()

	for {
		select {
		case <-ctx.Done():
			p.Bot.StopReceivingUpdates()
			p.Logger.Info("telegram polling stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := EventFromUpdate(upd)
			if !ok {
				continue
			}
			if !d.Submit(ctx, ev) {
				p.Bot.StopReceivingUpdates()
				return
			}
		}
	}
}

// EventFromUpdate extracts a text message event. Updates without a text
// message are skipped.
func EventFromUpdate(upd tgbotapi.Update) (conversation.Event, bool) {
	m := upd.Message
	if m == nil || m.Chat == nil || m.Text == "" {
		return conversation.Event{}, false
	}
	return conversation.Event{ChatID: m.Chat.ID, MessageID: m.MessageID, Text: m.Text}, true
}
