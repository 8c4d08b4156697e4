// Package session holds the per-chat conversation context between turns.
package session

import (
	"context"
	"strconv"
	"time"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
)

// DefaultTTL bounds how long an abandoned conversation survives.
const DefaultTTL = 24 * time.Hour

// Session is the transient conversation context of one chat identity.
type Session struct {
	ChatID     int64                    `json:"chat_id"`
	State      entity.ConversationState `json:"state"`
	Draft      entity.RegistrationDraft `json:"draft"`
	LoginPhone string                   `json:"login_phone,omitempty"`
	// FailedLogins counts consecutive wrong passwords in the current login attempt.
	FailedLogins int       `json:"failed_logins,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New returns an empty session at StateStart.
func New(chatID int64) Session {
	return Session{ChatID: chatID, State: entity.StateStart}
}

// Reset discards the draft and all login scratch data, leaving chatID and state untouched.
func (s *Session) Reset() {
	s.Draft = entity.RegistrationDraft{}
	s.LoginPhone = ""
	s.FailedLogins = 0
}

// Store persists sessions keyed by chat identity. A missing session loads as New(chatID).
type Store interface {
	Load(ctx context.Context, chatID int64) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context, chatID int64) error
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
