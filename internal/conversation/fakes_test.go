package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/oksasatya/superstar-bot/internal/application"
	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
)

type fakeDirectory struct {
	mu      sync.Mutex
	users   map[string]*entity.User // by phone
	orders  map[string][]entity.Order
	lookErr error
	makeErr error
	created int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[string]*entity.User{}, orders: map[string][]entity.Order{}}
}

func (f *fakeDirectory) add(u *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.Status == "" {
		u.Status = entity.StatusActive
	}
	f.users[u.Phone] = u
}

func (f *fakeDirectory) ExistsByPhone(_ context.Context, phone string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	return f.users[strings.TrimSpace(phone)], nil
}

func (f *fakeDirectory) ExistsByChatIdentity(_ context.Context, chatID int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	for _, u := range f.users {
		if u.ChatID != nil && *u.ChatID == chatID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) Create(_ context.Context, d entity.RegistrationDraft, chatID int64, hash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.makeErr != nil {
		return "", f.makeErr
	}
	if _, ok := f.users[d.Phone]; ok {
		return "", errs.ErrPhoneTaken
	}
	for _, u := range f.users {
		if u.ChatID != nil && *u.ChatID == chatID {
			u.ChatID = nil
		}
	}
	f.created++
	id := "user-" + d.Phone
	f.users[d.Phone] = &entity.User{
		ID: id, ChatID: &chatID, FullName: d.FullName, Phone: d.Phone, Email: d.Email,
		BusinessName: d.BusinessName, BusinessAddress: d.BusinessAddress, Governorate: d.Governorate,
		AnnualRevenue: d.AnnualRevenue, BusinessType: d.BusinessType, PasswordHash: hash,
		Status: entity.StatusActive,
	}
	return id, nil
}

func (f *fakeDirectory) RebindChatIdentity(_ context.Context, phone string, chatID *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.makeErr != nil {
		return f.makeErr
	}
	target, ok := f.users[phone]
	if !ok {
		return errs.ErrUserNotFound
	}
	if chatID != nil {
		for _, u := range f.users {
			if u.ChatID != nil && *u.ChatID == *chatID {
				u.ChatID = nil
			}
		}
		id := *chatID
		target.ChatID = &id
		return nil
	}
	target.ChatID = nil
	return nil
}

func (f *fakeDirectory) GetRecentOrders(_ context.Context, userID string, limit int) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	o := f.orders[userID]
	if len(o) > limit {
		o = o[:limit]
	}
	return o, nil
}

func (f *fakeDirectory) byPhone(phone string) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[phone]
}

// fakeCredentials uses a reversible "hash" so tests stay fast.
type fakeCredentials struct {
	dir      *fakeDirectory
	resets   []string
	hasEmail bool
}

func (c *fakeCredentials) Hash(password string) (string, error) { return "h:" + password, nil }

func (c *fakeCredentials) Verify(ctx context.Context, phone, password string) (*entity.User, error) {
	u, err := c.dir.ExistsByPhone(ctx, phone)
	if err != nil || u == nil {
		return nil, err
	}
	if u.PasswordHash != "h:"+password {
		return nil, nil
	}
	return u, nil
}

func (c *fakeCredentials) RequestReset(ctx context.Context, phone string) (*application.ResetRequest, error) {
	u, err := c.dir.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.ErrUserNotFound
	}
	c.resets = append(c.resets, phone)
	return &application.ResetRequest{User: u, Link: "https://example.test/reset?token=t", Emailed: c.hasEmail}, nil
}

type sent struct {
	chatID int64
	reply  Reply
}

type fakeTransport struct {
	mu      sync.Mutex
	sent    []sent
	deleted []int
}

func (t *fakeTransport) Deliver(_ context.Context, chatID int64, r Reply) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, sent{chatID: chatID, reply: r})
	return nil
}

func (t *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleted = append(t.deleted, messageID)
	return nil
}

func newTestEngine() (*Engine, *fakeDirectory, *fakeCredentials) {
	dir := newFakeDirectory()
	creds := &fakeCredentials{dir: dir, hasEmail: true}
	return NewEngine(dir, creds, helpers.NewNopLogger(), "https://app.example.test"), dir, creds
}
