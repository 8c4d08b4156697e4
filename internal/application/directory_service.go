package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	repo "github.com/oksasatya/superstar-bot/internal/domain/repository"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
)

// DirectoryService is the user directory facade used by the conversation
// engine. Repository failures surface as errs.KindStorage; a missing row is
// reported as a nil result, never as an error.
type DirectoryService struct {
	Users  repo.UserRepository
	Orders repo.OrderRepository
	Logger *logrus.Logger
}

func NewDirectoryService(users repo.UserRepository, orders repo.OrderRepository, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{Users: users, Orders: orders, Logger: logger}
}

// ExistsByPhone returns the user registered with phone, or nil.
func (s *DirectoryService) ExistsByPhone(ctx context.Context, phone string) (*entity.User, error) {
	u, err := s.Users.GetByPhone(ctx, strings.TrimSpace(phone))
	return s.optional(u, err, "get user by phone")
}

// ExistsByChatIdentity returns the user currently bound to chatID, or nil.
func (s *DirectoryService) ExistsByChatIdentity(ctx context.Context, chatID int64) (*entity.User, error) {
	u, err := s.Users.GetByChatID(ctx, chatID)
	return s.optional(u, err, "get user by chat")
}

// Create commits a completed draft bound to chatID with the given password
// hash and returns the new user id.
func (s *DirectoryService) Create(ctx context.Context, d entity.RegistrationDraft, chatID int64, passwordHash string) (string, error) {
	if !d.Complete() {
		return "", errs.Validation("registration draft incomplete")
	}
	u := &entity.User{
		ChatID:          &chatID,
		FullName:        d.FullName,
		Phone:           d.Phone,
		Email:           d.Email,
		BusinessName:    d.BusinessName,
		BusinessAddress: d.BusinessAddress,
		Governorate:     d.Governorate,
		AnnualRevenue:   d.AnnualRevenue,
		BusinessType:    d.BusinessType,
		PasswordHash:    passwordHash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return "", errs.ErrPhoneTaken
		}
		helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"chat_id": chatID})
		return "", errs.Storage("create user", err)
	}
	if u.ID == "" {
		return "", errs.Storage("create user", errors.New("no id returned"))
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID, "chat_id": chatID})
	return u.ID, nil
}

// RebindChatIdentity binds chatID to the account with phone, or unbinds it when chatID is nil.
func (s *DirectoryService) RebindChatIdentity(ctx context.Context, phone string, chatID *int64) error {
	if err := s.Users.SetChatID(ctx, phone, chatID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errs.ErrUserNotFound
		}
		helpers.LogError(s.Logger, "rebind chat failed", err, nil)
		return errs.Storage("rebind chat", err)
	}
	return nil
}

// GetRecentOrders returns up to limit orders, newest first.
func (s *DirectoryService) GetRecentOrders(ctx context.Context, userID string, limit int) ([]entity.Order, error) {
	orders, err := s.Orders.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		helpers.LogError(s.Logger, "list orders failed", err, logrus.Fields{"user_id": userID})
		return nil, errs.Storage("list orders", err)
	}
	return orders, nil
}

func (s *DirectoryService) optional(u *entity.User, err error, op string) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		helpers.LogError(s.Logger, op+" failed", err, nil)
		return nil, errs.Storage(op, err)
	}
	return u, nil
}
