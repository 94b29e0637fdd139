package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/jobboard/config"
	"github.com/Payphone-Digital/jobboard/internal/constants"
	"github.com/Payphone-Digital/jobboard/internal/dto"
	apperrors "github.com/Payphone-Digital/jobboard/internal/errors"
	"github.com/Payphone-Digital/jobboard/internal/middleware"
	"github.com/Payphone-Digital/jobboard/internal/service"
	"github.com/Payphone-Digital/jobboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     *service.AuthService
	cookie          config.CookieConfig
	refreshDuration time.Duration
}

func NewAuthHandler(authService *service.AuthService, cookie config.CookieConfig, refreshDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		cookie:          cookie,
		refreshDuration: refreshDuration,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := handlerContext(c, "Register")
	req := middleware.Body[dto.RegisterRequest](c)

	account, err := h.authService.Register(ctx, req)
	if err != nil {
		respondError(ctx, c, err, "Register")
		return
	}

	logger.InfoWithContext(ctx, "User registered").
		String("user_id", account.ID.String()).
		Log()
	respond(c, http.StatusCreated, constants.MsgCreated, account)
}

// Login returns the access token in the body and the refresh token in an
// httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := handlerContext(c, "Login")
	req := middleware.Body[dto.LoginRequest](c)

	response, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, c, err, "Login")
		return
	}

	h.setRefreshCookie(c, response.RefreshToken, int(h.refreshDuration.Seconds()))
	respond(c, http.StatusOK, "Login successful", response)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := handlerContext(c, "Refresh")

	token, err := c.Cookie(constants.CookieRefreshToken)
	if err != nil || token == "" {
		respondError(ctx, c, apperrors.ErrInvalidRefreshToken, "Refresh")
		return
	}

	response, err := h.authService.Refresh(ctx, token)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			h.setRefreshCookie(c, "", -1)
		}
		respondError(ctx, c, err, "Refresh")
		return
	}

	h.setRefreshCookie(c, response.RefreshToken, int(h.refreshDuration.Seconds()))
	respond(c, http.StatusOK, "Token refreshed", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := handlerContext(c, "Logout")
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(ctx, a.ActorID); err != nil {
		respondError(ctx, c, err, "Logout")
		return
	}

	h.setRefreshCookie(c, "", -1)
	respond(c, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Account(c *gin.Context) {
	ctx := handlerContext(c, "Account")
	a, ok := actor(c)
	if !ok {
		return
	}

	account, err := h.authService.Account(ctx, a.ActorID)
	if err != nil {
		respondError(ctx, c, err, "Account")
		return
	}
	respond(c, http.StatusOK, constants.MsgFetched, account)
}

// A negative maxAge clears the cookie.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(constants.CookieRefreshToken, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, h.cookie.HTTPOnly)
}
