package conversation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/internal/infrastructure/session"
)

// Bot routes inbound events to the onboarding engine or the main menu. Turns
// of one chat run strictly one after another; different chats run in parallel.
type Bot struct {
	Engine    *Engine
	Menu      *Menu
	Store     session.Store
	Locker    *session.Locker
	Transport Transport
	Logger    *logrus.Logger
}

func NewBot(engine *Engine, menu *Menu, store session.Store, transport Transport, logger *logrus.Logger) *Bot {
	return &Bot{
		Engine:    engine,
		Menu:      menu,
		Store:     store,
		Locker:    session.NewLocker(),
		Transport: transport,
		Logger:    logger,
	}
}

// HandleEvent processes one inbound message and delivers the reply. The
// returned Reply is what was (or would have been) sent.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) Reply {
	r := b.turn(ctx, ev)

	if r.DeleteInbound && ev.MessageID != 0 {
		if err := b.Transport.DeleteMessage(ctx, ev.ChatID, ev.MessageID); err != nil {
			b.log(ev).WithError(err).Debug("delete inbound message failed")
		}
	}
	if r.Silent {
		return r
	}
	if err := b.Transport.Deliver(ctx, ev.ChatID, r); err != nil {
		b.log(ev).WithError(err).Warn("deliver reply failed")
	}
	return r
}

func (b *Bot) turn(ctx context.Context, ev Event) Reply {
	unlock := b.Locker.Lock(ev.ChatID)
	defer unlock()

	s, err := b.Store.Load(ctx, ev.ChatID)
	if err != nil {
		// routing against a guessed state could skip or repeat a step
		b.log(ev).WithError(err).Error("load session failed")
		return Reply{Text: msgTryAgainLater, Err: errs.Storage("load session", err)}
	}

	cmd := Classify(ev.Text)
	var r Reply
	switch {
	case cmd == CmdStart || midFlow(s.State):
		r = b.Engine.Handle(ctx, &s, ev.Text)
	case cmd == CmdTrackOrders || cmd == CmdLogout:
		r = b.Menu.Dispatch(ctx, &s, cmd)
	case cmd == CmdRegister || cmd == CmdLogin || s.State == entity.StateChoosingPath:
		r = b.Engine.Handle(ctx, &s, ev.Text)
	default:
		return Reply{Silent: true}
	}
	if r.Silent {
		return r
	}

	if r.Err != nil {
		b.log(ev).WithField("cmd", cmd.String()).WithError(r.Err).Debug("turn rejected")
	}
	if err := b.persist(ctx, s); err != nil {
		b.log(ev).WithError(err).Error("persist session failed")
		// the stored state did not move, so the reply must not claim it did
		return Reply{Text: msgTryAgainLater, DeleteInbound: r.DeleteInbound, Err: errs.Storage("persist session", err)}
	}
	return r
}

func (b *Bot) persist(ctx context.Context, s session.Session) error {
	if s.State.InProgress() {
		return b.Store.Save(ctx, s)
	}
	return b.Store.Clear(ctx, s.ChatID)
}

func (b *Bot) log(ev Event) *logrus.Entry {
	l := b.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithField("chat_id", ev.ChatID)
}
