package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/superstar-bot/internal/application"
	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
	"github.com/oksasatya/superstar-bot/pkg/validation"
)

type stubResetService struct {
	known     map[string]bool
	resetErr  error
	lastPhone string
	lastToken string
}

func (s *stubResetService) RequestReset(_ context.Context, phone string) (*application.ResetRequest, error) {
	s.lastPhone = phone
	if !s.known[phone] {
		return nil, errs.ErrUserNotFound
	}
	return &application.ResetRequest{User: &entity.User{ID: "u1"}, Link: "https://app.test/reset?token=abc"}, nil
}

func (s *stubResetService) ResetPassword(_ context.Context, token, _ string) (string, error) {
	s.lastToken = token
	if s.resetErr != nil {
		return "", s.resetErr
	}
	return "u1", nil
}

func setupRouter(svc ResetService, expose bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := NewResetHandler(svc, helpers.NewNopLogger(), expose)
	r := gin.New()
	r.POST("/api/auth/reset/init", h.ResetInit)
	r.POST("/api/auth/reset/confirm", h.ResetConfirm)
	return r
}

func post(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestResetInitSameAnswerForUnknownPhone(t *testing.T) {
	svc := &stubResetService{known: map[string]bool{"07901234567": true}}
	r := setupRouter(svc, false)

	known := post(r, "/api/auth/reset/init", map[string]string{"phone": "07901234567"})
	unknown := post(r, "/api/auth/reset/init", map[string]string{"phone": "07801234567"})
	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("codes %d/%d", known.Code, unknown.Code)
	}
	k, u := decode(t, known), decode(t, unknown)
	if k["message"] != u["message"] {
		t.Fatal("responses differ between known and unknown phone")
	}
	if data, _ := k["data"].(map[string]any); data["reset_link"] != nil {
		t.Fatal("link exposed outside development")
	}
}

func TestResetInitExposesLinkInDevelopment(t *testing.T) {
	svc := &stubResetService{known: map[string]bool{"07901234567": true}}
	rec := post(setupRouter(svc, true), "/api/auth/reset/init", map[string]string{"phone": "07901234567"})
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["reset_link"] != "https://app.test/reset?token=abc" {
		t.Fatalf("data = %v", data)
	}
}

func TestResetInitValidatesPhone(t *testing.T) {
	svc := &stubResetService{}
	rec := post(setupRouter(svc, false), "/api/auth/reset/init", map[string]string{"phone": "12345"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", rec.Code)
	}
	if svc.lastPhone != "" {
		t.Fatal("service called with invalid phone")
	}
}

func TestResetConfirm(t *testing.T) {
	cases := []struct {
		name string
		err  error
		body map[string]string
		code int
	}{
		{"ok", nil, map[string]string{"token": "t", "new_password": "abc12345"}, http.StatusOK},
		{"weak", nil, map[string]string{"token": "t", "new_password": "abcdefgh"}, http.StatusBadRequest},
		{"too long", nil, map[string]string{"token": "t", "new_password": "abc1" + strings.Repeat("z", 69)}, http.StatusBadRequest},
		{"missing token", nil, map[string]string{"new_password": "abc12345"}, http.StatusBadRequest},
		{"bad token", errs.ErrTokenNotFound, map[string]string{"token": "t", "new_password": "abc12345"}, http.StatusBadRequest},
		{"storage", errs.Storage("update", errors.New("down")), map[string]string{"token": "t", "new_password": "abc12345"}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubResetService{resetErr: tc.err}
			rec := post(setupRouter(svc, false), "/api/auth/reset/confirm", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d (%s)", rec.Code, tc.code, rec.Body.String())
			}
		})
	}
}
