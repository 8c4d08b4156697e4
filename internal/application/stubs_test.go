package application

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	repo "github.com/oksasatya/superstar-bot/internal/domain/repository"
)

type stubUserRepo struct {
	mu      sync.Mutex
	byPhone map[string]*entity.User
	err     error
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byPhone: map[string]*entity.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.byPhone[u.Phone]; ok {
		return repo.ErrConflict
	}
	s.nextID++
	u.ID = "id-" + u.Phone
	u.Status = entity.StatusActive
	cp := *u
	s.byPhone[u.Phone] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byPhone {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *stubUserRepo) GetByPhone(_ context.Context, phone string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byPhone[phone]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByChatID(_ context.Context, chatID int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byPhone {
		if u.ChatID != nil && *u.ChatID == chatID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *stubUserRepo) SetChatID(_ context.Context, phone string, chatID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	u, ok := s.byPhone[phone]
	if !ok {
		return repo.ErrNotFound
	}
	if chatID != nil {
		for _, o := range s.byPhone {
			if o.ChatID != nil && *o.ChatID == *chatID {
				o.ChatID = nil
			}
		}
	}
	u.ChatID = chatID
	return nil
}

func (s *stubUserRepo) setHash(userID, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byPhone {
		if u.ID == userID {
			u.PasswordHash = hash
			return true
		}
	}
	return false
}

type stubTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.ResetToken
	users  *stubUserRepo
	err    error
}

func newStubTokenRepo(users *stubUserRepo) *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]*entity.ResetToken{}, users: users}
}

func (s *stubTokenRepo) Insert(_ context.Context, t *entity.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *t
	s.tokens[t.Token] = &cp
	return nil
}

func (s *stubTokenRepo) Consume(_ context.Context, token string, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	t, ok := s.tokens[token]
	if !ok || !t.Usable(now) {
		return "", repo.ErrNotFound
	}
	t.Used = true
	return t.UserID, nil
}

func (s *stubTokenRepo) ConsumeAndSetPassword(ctx context.Context, token string, now time.Time, hash string) (string, error) {
	uid, err := s.Consume(ctx, token, now)
	if err != nil {
		return "", err
	}
	s.users.setHash(uid, hash)
	return uid, nil
}

type stubOrderRepo struct {
	orders []entity.Order
	err    error
	limit  int
}

func (s *stubOrderRepo) ListRecentByUser(_ context.Context, _ string, limit int) ([]entity.Order, error) {
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	if len(s.orders) > limit {
		return s.orders[:limit], nil
	}
	return s.orders, nil
}

type capturePublisher struct {
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}
