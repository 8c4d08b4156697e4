package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/superstar-bot/internal/container"
	handlers "github.com/oksasatya/superstar-bot/internal/interface/http"
	"github.com/oksasatya/superstar-bot/internal/interface/middleware"
)

// AuthModule exposes the password reset link flow started from the chat.
type AuthModule struct {
	Handler *handlers.ResetHandler
}

func NewAuthModule(h *handlers.ResetHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	resetInitLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetPhoneLimiter := middleware.RateLimit(rdb, 3, 15*time.Minute, middleware.KeyByJSONField("phone"), nil)
	resetConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/reset/init", resetInitLimiter, resetPhoneLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)
}
