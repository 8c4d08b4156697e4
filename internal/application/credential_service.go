package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/config"
	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	repo "github.com/oksasatya/superstar-bot/internal/domain/repository"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
	"github.com/oksasatya/superstar-bot/pkg/mailer"
	tpl "github.com/oksasatya/superstar-bot/pkg/mailer/templates"
	"github.com/oksasatya/superstar-bot/pkg/validation"
)

const DefaultResetTokenTTL = time.Hour

// CredentialService hashes and verifies passwords and runs the reset-token lifecycle.
type CredentialService struct {
	Users    repo.UserRepository
	Tokens   repo.ResetTokenRepository
	Logger   *logrus.Logger
	Cost     int
	TokenTTL time.Duration
	Now      func() time.Time

	// Optional: queue reset emails. Nil disables email delivery.
	Pub helpers.JSONPublisher
	Cfg *config.Config

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentialService(users repo.UserRepository, tokens repo.ResetTokenRepository, logger *logrus.Logger, cost int, tokenTTL time.Duration) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultResetTokenTTL
	}
	return &CredentialService{
		Users:    users,
		Tokens:   tokens,
		Logger:   logger,
		Cost:     cost,
		TokenTTL: tokenTTL,
		Now:      time.Now,
	}
}

func (s *CredentialService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Hash returns a salted bcrypt hash of password.
func (s *CredentialService) Hash(password string) (string, error) {
	return helpers.HashPassword(password, s.Cost)
}

// Verify returns the user owning phone if password matches its stored hash.
// An unknown phone and a wrong password both yield (nil, nil); only storage
// failures produce an error.
func (s *CredentialService) Verify(ctx context.Context, phone, password string) (*entity.User, error) {
	u, err := s.Users.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// burn comparable time so response latency does not reveal the miss
			helpers.CompareHashAndPassword(s.fallbackHash(), password)
			return nil, nil
		}
		helpers.LogError(s.Logger, "verify: load user failed", err, nil)
		return nil, errs.Storage("load user", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, nil
	}
	return u, nil
}

func (s *CredentialService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = helpers.HashPassword("not-a-real-password-0", s.Cost)
	})
	return s.dummyHash
}

// IssueResetToken creates a new single-use token for userID valid for TokenTTL.
// Earlier tokens of the same user stay valid until used or expired.
func (s *CredentialService) IssueResetToken(ctx context.Context, userID string) (string, error) {
	tok, err := helpers.GenToken(helpers.ResetTokenBytes)
	if err != nil {
		return "", err
	}
	t := &entity.ResetToken{
		UserID:    userID,
		Token:     tok,
		ExpiresAt: s.now().Add(s.TokenTTL),
	}
	if err := s.Tokens.Insert(ctx, t); err != nil {
		helpers.LogError(s.Logger, "issue reset token failed", err, logrus.Fields{"user_id": userID})
		return "", errs.Storage("insert reset token", err)
	}
	return tok, nil
}

// ConsumeResetToken redeems token and returns its user id. Expired, used and
// unknown tokens all return errs.ErrTokenNotFound.
func (s *CredentialService) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	uid, err := s.Tokens.Consume(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", errs.ErrTokenNotFound
		}
		helpers.LogError(s.Logger, "consume reset token failed", err, nil)
		return "", errs.Storage("consume reset token", err)
	}
	return uid, nil
}

// ResetPassword consumes token and sets newPassword on its user atomically.
// The hash is computed before the transaction opens.
func (s *CredentialService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if !validation.IsStrongPassword(newPassword) {
		return "", errs.Validation("weak password")
	}
	hash, err := s.Hash(newPassword)
	if err != nil {
		return "", err
	}
	uid, err := s.Tokens.ConsumeAndSetPassword(ctx, token, s.now(), hash)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", errs.ErrTokenNotFound
		}
		helpers.LogError(s.Logger, "reset password failed", err, nil)
		return "", errs.Storage("reset password", err)
	}
	helpers.LogInfo(s.Logger, "password reset", logrus.Fields{"user_id": uid})
	return uid, nil
}

// ResetRequest is the outcome of RequestReset.
type ResetRequest struct {
	User      *entity.User
	Link      string
	ExpiresAt time.Time
	Emailed   bool
}

// RequestReset issues a token for the account behind phone and queues the
// reset email when the account has an address and mail is enabled.
func (s *CredentialService) RequestReset(ctx context.Context, phone string) (*ResetRequest, error) {
	u, err := s.Users.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		helpers.LogError(s.Logger, "reset request: load user failed", err, nil)
		return nil, errs.Storage("load user", err)
	}
	tok, err := s.IssueResetToken(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	req := &ResetRequest{User: u, ExpiresAt: s.now().Add(s.TokenTTL)}
	if s.Cfg != nil {
		req.Link = s.Cfg.ResetPasswordURL + "?token=" + tok
	}
	if s.Pub != nil && s.Cfg != nil && s.Cfg.MailSendEnabled && u.Email != "" {
		data := tpl.NewResetPasswordData(s.Cfg, u.FullName, u.Email,
			tpl.WithPhone(u.Phone),
			tpl.WithResetURL(req.Link),
			tpl.WithTime(s.now()),
			tpl.WithExpiresAt(req.ExpiresAt),
		)
		job := mailer.EmailJob{To: u.Email, Template: tpl.ResetPassword, Data: data}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			// the token is still valid; the user can ask again
			helpers.LogError(s.Logger, "enqueue reset email failed", err, logrus.Fields{"user_id": u.ID})
		} else {
			req.Emailed = true
		}
	}
	return req, nil
}
