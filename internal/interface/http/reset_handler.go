package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/application"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/pkg/response"
	"github.com/oksasatya/superstar-bot/pkg/validation"
)

// ResetService is what the password reset endpoints need from the credential manager.
type ResetService interface {
	RequestReset(ctx context.Context, phone string) (*application.ResetRequest, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

type ResetHandler struct {
	Svc    ResetService
	Logger *logrus.Logger
	// ExposeLink returns the reset link in the init response. Development only.
	ExposeLink bool
}

func NewResetHandler(svc ResetService, logger *logrus.Logger, exposeLink bool) *ResetHandler {
	return &ResetHandler{Svc: svc, Logger: logger, ExposeLink: exposeLink}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// ResetInit - POST /api/auth/reset/init {phone}
// The answer is the same whether or not the phone is registered.
func (h *ResetHandler) ResetInit(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required,iqphone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	fields := logrus.Fields{"ip": clientIP(c), "request_id": c.GetString("request_id")}

	out, err := h.Svc.RequestReset(c.Request.Context(), req.Phone)
	switch {
	case errs.Is(err, errs.KindNotFound):
		h.Logger.WithFields(fields).Info("reset requested for unknown phone")
	case err != nil:
		h.Logger.WithFields(fields).WithError(err).Error("reset request failed")
		response.Error(c, http.StatusInternalServerError, "reset unavailable", nil)
		return
	default:
		h.Logger.WithFields(fields).WithField("user_id", out.User.ID).Info("reset token issued")
	}

	data := gin.H{}
	if h.ExposeLink && out != nil {
		data["reset_link"] = out.Link
	}
	response.Success(c, http.StatusOK, data, "if the account exists, a reset link has been sent")
}

// ResetConfirm - POST /api/auth/reset/confirm {token, new_password}
func (h *ResetHandler) ResetConfirm(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid, err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	switch {
	case errs.Is(err, errs.KindNotFound):
		response.Error(c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	case errs.Is(err, errs.KindValidation):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"new_password": "too weak"})
		return
	case err != nil:
		h.Logger.WithError(err).Error("reset confirm failed")
		response.Error(c, http.StatusInternalServerError, "update failed", nil)
		return
	}
	h.Logger.WithFields(logrus.Fields{"user_id": uid, "ip": clientIP(c)}).Info("password reset via link")
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password updated")
}
