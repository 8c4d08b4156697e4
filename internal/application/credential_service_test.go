package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/superstar-bot/config"
	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
	"github.com/oksasatya/superstar-bot/pkg/mailer"
	tpl "github.com/oksasatya/superstar-bot/pkg/mailer/templates"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCredentials(t *testing.T) (*CredentialService, *stubUserRepo, *stubTokenRepo, *clock) {
	t.Helper()
	users := newStubUserRepo()
	tokens := newStubTokenRepo(users)
	clk := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewCredentialService(users, tokens, helpers.NewNopLogger(), bcrypt.MinCost, time.Hour)
	svc.Now = clk.now
	return svc, users, tokens, clk
}

func seedUser(t *testing.T, svc *CredentialService, users *stubUserRepo, phone, password string) *entity.User {
	t.Helper()
	hash, err := svc.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &entity.User{FullName: "Ali Hassan", Phone: phone, Email: "ali@example.com", PasswordHash: hash}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}
	return u
}

func TestHashVerifyRoundTrip(t *testing.T) {
	svc, users, _, _ := newTestCredentials(t)
	ctx := context.Background()

	h1, _ := svc.Hash("abc12345")
	h2, _ := svc.Hash("abc12345")
	if h1 == h2 {
		t.Fatal("hashes must be salted")
	}
	if strings.Contains(h1, "abc12345") {
		t.Fatal("hash contains plaintext")
	}

	seedUser(t, svc, users, "07901234567", "abc12345")
	u, err := svc.Verify(ctx, "07901234567", "abc12345")
	if err != nil || u == nil {
		t.Fatalf("verify good password: u=%v err=%v", u, err)
	}
	u, err = svc.Verify(ctx, "07901234567", "abc12346")
	if err != nil || u != nil {
		t.Fatalf("verify wrong password: u=%v err=%v", u, err)
	}
	u, err = svc.Verify(ctx, "07700000000", "abc12345")
	if err != nil || u != nil {
		t.Fatalf("verify unknown phone: u=%v err=%v", u, err)
	}
}

func TestVerifyStorageError(t *testing.T) {
	svc, users, _, _ := newTestCredentials(t)
	users.err = errors.New("conn refused")
	_, err := svc.Verify(context.Background(), "07901234567", "abc12345")
	if !errs.Is(err, errs.KindStorage) {
		t.Fatalf("err = %v", err)
	}
}

func TestResetTokenLifecycle(t *testing.T) {
	svc, users, _, clk := newTestCredentials(t)
	ctx := context.Background()
	u := seedUser(t, svc, users, "07901234567", "abc12345")

	tok, err := svc.IssueResetToken(ctx, u.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(tok) < 40 {
		t.Fatalf("token too short: %q", tok)
	}
	other, _ := svc.IssueResetToken(ctx, u.ID)
	if other == tok {
		t.Fatal("tokens must be unique")
	}

	uid, err := svc.ConsumeResetToken(ctx, tok)
	if err != nil || uid != u.ID {
		t.Fatalf("consume: uid=%q err=%v", uid, err)
	}
	if _, err := svc.ConsumeResetToken(ctx, tok); !errors.Is(err, errs.ErrTokenNotFound) {
		t.Fatalf("second consume: %v", err)
	}

	// earlier tokens stay valid until their own expiry
	clk.t = clk.t.Add(59 * time.Minute)
	if _, err := svc.ConsumeResetToken(ctx, other); err != nil {
		t.Fatalf("older token: %v", err)
	}

	late, _ := svc.IssueResetToken(ctx, u.ID)
	clk.t = clk.t.Add(time.Hour)
	if _, err := svc.ConsumeResetToken(ctx, late); !errors.Is(err, errs.ErrTokenNotFound) {
		t.Fatalf("expired token: %v", err)
	}
	if _, err := svc.ConsumeResetToken(ctx, "nope"); !errors.Is(err, errs.ErrTokenNotFound) {
		t.Fatalf("unknown token: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, users, _, _ := newTestCredentials(t)
	ctx := context.Background()
	u := seedUser(t, svc, users, "07901234567", "abc12345")
	tok, _ := svc.IssueResetToken(ctx, u.ID)

	if _, err := svc.ResetPassword(ctx, tok, "short"); !errs.Is(err, errs.KindValidation) {
		t.Fatalf("weak password: %v", err)
	}
	if _, err := svc.ResetPassword(ctx, tok, "abc1"+strings.Repeat("z", 69)); !errs.Is(err, errs.KindValidation) {
		t.Fatalf("over-long password: %v", err)
	}
	uid, err := svc.ResetPassword(ctx, tok, "newpass99")
	if err != nil || uid != u.ID {
		t.Fatalf("reset: uid=%q err=%v", uid, err)
	}
	if got, _ := svc.Verify(ctx, u.Phone, "newpass99"); got == nil {
		t.Fatal("new password rejected")
	}
	if got, _ := svc.Verify(ctx, u.Phone, "abc12345"); got != nil {
		t.Fatal("old password still accepted")
	}
	if _, err := svc.ResetPassword(ctx, tok, "another99"); !errors.Is(err, errs.ErrTokenNotFound) {
		t.Fatalf("token reuse: %v", err)
	}
}

func TestRequestResetQueuesEmail(t *testing.T) {
	svc, users, _, _ := newTestCredentials(t)
	ctx := context.Background()
	seedUser(t, svc, users, "07901234567", "abc12345")
	pub := &capturePublisher{}
	svc.Pub = pub
	svc.Cfg = &config.Config{ResetPasswordURL: "https://app.test/reset", MailSendEnabled: true, CompanyName: "SuperStar"}

	req, err := svc.RequestReset(ctx, " 07901234567 ")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !req.Emailed || !strings.HasPrefix(req.Link, "https://app.test/reset?token=") {
		t.Fatalf("unexpected result: %+v", req)
	}
	if len(pub.jobs) != 1 {
		t.Fatalf("queued %d jobs", len(pub.jobs))
	}
	job := pub.jobs[0].(mailer.EmailJob)
	if job.To != "ali@example.com" || job.Template != tpl.ResetPassword {
		t.Fatalf("job = %+v", job)
	}
	if job.Data["ResetURL"] != req.Link {
		t.Fatalf("link not in email data: %v", job.Data["ResetURL"])
	}
}

func TestRequestResetWithoutMail(t *testing.T) {
	svc, users, _, _ := newTestCredentials(t)
	ctx := context.Background()
	seedUser(t, svc, users, "07901234567", "abc12345")

	req, err := svc.RequestReset(ctx, "07901234567")
	if err != nil || req.Emailed {
		t.Fatalf("req=%+v err=%v", req, err)
	}

	svc.Pub = &capturePublisher{err: errors.New("broker down")}
	svc.Cfg = &config.Config{MailSendEnabled: true}
	req, err = svc.RequestReset(ctx, "07901234567")
	if err != nil || req.Emailed {
		t.Fatalf("publisher failure should not fail the request: req=%+v err=%v", req, err)
	}

	if _, err := svc.RequestReset(ctx, "07700000000"); !errors.Is(err, errs.ErrUserNotFound) {
		t.Fatalf("unknown phone: %v", err)
	}
}
