package handlers

import (
	"net/http"

	"invoicedash/internal/common"
	"invoicedash/internal/middleware"
	"invoicedash/internal/models"
	"invoicedash/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoginPath is where signed-out users are sent.
const LoginPath = "/login"

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService   services.AuthService
	secureCookies bool
	logger        *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, secureCookies bool, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Login handles POST /login with email and password as form fields or JSON
func (h *AuthHandlers) Login(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	session, message, err := h.authService.Authenticate(c.Request().Context(), creds)
	if err != nil {
		h.logger.Error("sign-in failed unexpectedly", zap.Error(err))
		return err
	}
	if message != "" {
		return common.SendMessage(c, http.StatusUnauthorized, message)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, services.InvoicesPath)
}

// Logout handles POST /logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
