package application

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
)

func draft(phone string) entity.RegistrationDraft {
	return entity.RegistrationDraft{
		FullName:        "Ali Hassan Kareem",
		Phone:           phone,
		Email:           "ali@example.com",
		BusinessName:    "Star Shop",
		BusinessAddress: "Rashid street",
		Governorate:     "بغداد",
		AnnualRevenue:   entity.RevenueLessThan50k,
		BusinessType:    entity.BusinessRetail,
		Password:        "abc12345",
	}
}

func TestDirectoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	svc := NewDirectoryService(users, &stubOrderRepo{}, helpers.NewNopLogger())

	id, err := svc.Create(ctx, draft("07901234567"), 55, "hash")
	if err != nil || id == "" {
		t.Fatalf("create: id=%q err=%v", id, err)
	}
	u, err := svc.ExistsByChatIdentity(ctx, 55)
	if err != nil || u == nil || u.ID != id {
		t.Fatalf("by chat: u=%v err=%v", u, err)
	}
	if u.PasswordHash != "hash" {
		t.Fatal("password hash not stored")
	}

	if _, err := svc.Create(ctx, draft("07901234567"), 56, "hash"); !errors.Is(err, errs.ErrPhoneTaken) {
		t.Fatalf("duplicate: %v", err)
	}
	if u, err := svc.ExistsByPhone(ctx, "07700000000"); u != nil || err != nil {
		t.Fatalf("absent phone: u=%v err=%v", u, err)
	}

	incomplete := draft("07701111111")
	incomplete.Email = ""
	if _, err := svc.Create(ctx, incomplete, 57, "hash"); !errs.Is(err, errs.KindValidation) {
		t.Fatalf("incomplete draft: %v", err)
	}
}

func TestDirectoryRebind(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	svc := NewDirectoryService(users, &stubOrderRepo{}, helpers.NewNopLogger())
	_, _ = svc.Create(ctx, draft("07901234567"), 1, "h")
	_, _ = svc.Create(ctx, draft("07801234567"), 2, "h")

	chat := int64(1)
	if err := svc.RebindChatIdentity(ctx, "07801234567", &chat); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	u, _ := svc.ExistsByChatIdentity(ctx, 1)
	if u == nil || u.Phone != "07801234567" {
		t.Fatalf("chat 1 bound to %v", u)
	}
	if first, _ := svc.ExistsByPhone(ctx, "07901234567"); first.ChatID != nil {
		t.Fatal("previous binding not cleared")
	}

	if err := svc.RebindChatIdentity(ctx, "07801234567", nil); err != nil {
		t.Fatalf("unbind: %v", err)
	}
	if u, _ := svc.ExistsByChatIdentity(ctx, 1); u != nil {
		t.Fatal("still bound after unbind")
	}
	if err := svc.RebindChatIdentity(ctx, "07700000000", &chat); !errors.Is(err, errs.ErrUserNotFound) {
		t.Fatalf("unknown phone: %v", err)
	}
}

func TestDirectoryStorageErrors(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	users.err = errors.New("db down")
	orders := &stubOrderRepo{err: errors.New("db down")}
	svc := NewDirectoryService(users, orders, helpers.NewNopLogger())

	if _, err := svc.ExistsByPhone(ctx, "07901234567"); !errs.Is(err, errs.KindStorage) {
		t.Fatalf("by phone: %v", err)
	}
	if _, err := svc.Create(ctx, draft("07901234567"), 1, "h"); !errs.Is(err, errs.KindStorage) {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetRecentOrders(ctx, "u1", 5); !errs.Is(err, errs.KindStorage) {
		t.Fatalf("orders: %v", err)
	}
}

func TestGetRecentOrdersPassesLimit(t *testing.T) {
	orders := &stubOrderRepo{orders: make([]entity.Order, 8)}
	svc := NewDirectoryService(newStubUserRepo(), orders, helpers.NewNopLogger())
	got, err := svc.GetRecentOrders(context.Background(), "u1", 5)
	if err != nil || len(got) != 5 || orders.limit != 5 {
		t.Fatalf("got %d orders (limit %d), err=%v", len(got), orders.limit, err)
	}
}
