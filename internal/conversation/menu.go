package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/infrastructure/session"
)

const DefaultOrderLimit = 5

// Menu serves the main-menu commands of a chat bound to an account.
type Menu struct {
	Dir        Directory
	Logger     *logrus.Logger
	WebAppURL  string
	OrderLimit int
}

func NewMenu(dir Directory, logger *logrus.Logger, webAppURL string) *Menu {
	return &Menu{Dir: dir, Logger: logger, WebAppURL: webAppURL, OrderLimit: DefaultOrderLimit}
}

// Dispatch runs cmd for the chat behind s. Commands it does not own are ignored silently.
func (m *Menu) Dispatch(ctx context.Context, s *session.Session, cmd Command) Reply {
	switch cmd {
	case CmdTrackOrders:
		return m.trackOrders(ctx, s)
	case CmdLogout:
		return m.logout(ctx, s)
	}
	return Reply{Silent: true}
}

func (m *Menu) trackOrders(ctx context.Context, s *session.Session) Reply {
	u, err := m.Dir.ExistsByChatIdentity(ctx, s.ChatID)
	if err != nil {
		m.log(s).WithError(err).Error("track orders: lookup failed")
		return Reply{Text: msgTryAgainLater, Keyboard: kbMainMenu, Err: err}
	}
	if u == nil {
		return Reply{Text: msgDataError, Keyboard: kbChoosePath}
	}
	limit := m.OrderLimit
	if limit <= 0 {
		limit = DefaultOrderLimit
	}
	orders, err := m.Dir.GetRecentOrders(ctx, u.ID, limit)
	if err != nil {
		m.log(s).WithError(err).Error("track orders: list failed")
		return Reply{Text: msgTryAgainLater, Keyboard: kbMainMenu, Err: err}
	}
	if len(orders) == 0 {
		return Reply{Text: msgNoOrders, Keyboard: kbMainMenu}
	}
	return Reply{Text: FormatOrders(orders), Keyboard: kbMainMenu, WebAppURL: m.WebAppURL}
}

func (m *Menu) logout(ctx context.Context, s *session.Session) Reply {
	u, err := m.Dir.ExistsByChatIdentity(ctx, s.ChatID)
	if err != nil {
		m.log(s).WithError(err).Error("logout: lookup failed")
		return Reply{Text: msgTryAgainLater, Keyboard: kbMainMenu, Err: err}
	}
	if u != nil {
		if err := m.Dir.RebindChatIdentity(ctx, u.Phone, nil); err != nil {
			m.log(s).WithError(err).Error("logout: unbind failed")
			return Reply{Text: msgTryAgainLater, Keyboard: kbMainMenu, Err: err}
		}
		m.log(s).WithField("user_id", u.ID).Info("logged out")
	}
	s.Reset()
	s.State = entity.StateChoosingPath
	return Reply{Text: msgLoggedOut, Keyboard: kbChoosePath}
}

func (m *Menu) log(s *session.Session) *logrus.Entry {
	l := m.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithField("chat_id", s.ChatID)
}

var statusEmoji = map[entity.OrderStatus]string{
	entity.OrderPending:   "⏳",
	entity.OrderConfirmed: "✅",
	entity.OrderShipped:   "🚚",
	entity.OrderDelivered: "📦",
	entity.OrderCancelled: "❌",
}

// FormatOrders renders orders in the given order, one block each.
func FormatOrders(orders []entity.Order) string {
	var b strings.Builder
	b.WriteString(msgOrdersHeader)
	for _, o := range orders {
		emoji, ok := statusEmoji[o.Status]
		if !ok {
			emoji = "❓"
		}
		fmt.Fprintf(&b, "%s طلب رقم: %s\n", emoji, o.OrderNumber)
		fmt.Fprintf(&b, "الحالة: %s\n", o.Status)
		fmt.Fprintf(&b, "المبلغ: %.2f د.ع\n", o.TotalAmount)
		fmt.Fprintf(&b, "التاريخ: %s\n\n", o.CreatedAt.Format("2006-01-02"))
	}
	return strings.TrimRight(b.String(), "\n")
}
