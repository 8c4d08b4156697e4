package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("conflict")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetByChatID(ctx context.Context, chatID int64) (*entity.User, error)
	// SetChatID binds chatID to the user with the given phone (nil unbinds).
	// Any other user still bound to the same chat id is unbound first.
	SetChatID(ctx context.Context, phone string, chatID *int64) error
}

// OrderRepository reads customer orders.
type OrderRepository interface {
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]entity.Order, error)
}

// ResetTokenRepository persists password reset tokens.
type ResetTokenRepository interface {
	Insert(ctx context.Context, t *entity.ResetToken) error
	// Consume marks the token used if it is unused and not expired at now,
	// returning the owning user id, or ErrNotFound.
	Consume(ctx context.Context, token string, now time.Time) (string, error)
	// ConsumeAndSetPassword atomically consumes the token and stores the new
	// hash on its user. Either both writes happen or neither does.
	ConsumeAndSetPassword(ctx context.Context, token string, now time.Time, passwordHash string) (string, error)
}
