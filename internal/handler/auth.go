package handler

import (
	"errors"
	"time"

	"github.com/deppfellow/dogwalk/internal/errs"
	"github.com/deppfellow/dogwalk/internal/middleware"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/service"
	"github.com/deppfellow/dogwalk/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), auth: auth}
}

// Login starts a session for a matching username/password pair and
// returns the role's dashboard. Failures answer in plain text.
func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (string, error) {
	ctx := c.Request().Context()

	user, err := h.auth.Login(ctx, req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return "", errs.NewUnauthorizedError("Invalid credentials").AsPlainText()
	}
	if err != nil {
		return "", sqlerr.HandlePlainTextError(err, "Login error")
	}

	if _, err := h.server.Sessions.Create(ctx, c.Response(), *user); err != nil {
		return "", sqlerr.HandlePlainTextError(err, "Login error")
	}

	middleware.GetLogger(c).Info().
		Int("user_id", user.UserID).
		Str("user_role", string(user.Role)).
		Msg("user logged in")

	return user.Role.DashboardPath(), nil
}

// Logout always lands on "/". A store failure is logged, the cookie is
// cleared regardless.
func (h *AuthHandler) Logout(c echo.Context, _ *model.NoParams) (string, error) {
	logger := middleware.GetLogger(c)

	if err := h.server.Sessions.Destroy(c.Request().Context(), c.Response(), c.Request()); err != nil {
		logger.Error().Err(err).Msg("failed to destroy session")
		return "/", nil
	}

	if sess := middleware.GetSession(c); sess != nil {
		logger.Info().
			Int("user_id", sess.User.UserID).
			Str("username", sess.User.Username).
			Dur("session_age", time.Since(sess.CreatedAt)).
			Msg("user logged out")
	}

	return "/", nil
}
