package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/arshprem01/flower-eCommerce/internal/logging"
	"github.com/arshprem01/flower-eCommerce/internal/session"
)

const (
	adminCookie   = "adminToken"
	adminTokenTTL = 12 * time.Hour
)

type AuthHandler struct {
	Svc       *session.Service
	JWTSecret []byte
}

func createCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Login(ctx, req.Password); err != nil {
		if errors.Is(err, session.ErrInvalidPassword) {
			l.Warn("admin_login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
		}
		l.Error("admin_login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	exp := time.Now().Add(adminTokenTTL)
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
	if err != nil {
		l.Error("admin_login_error", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	c.SetCookie(createCookie(adminCookie, token, "/", exp))

	l.Info("admin_login_success")
	return c.JSON(http.StatusOK, map[string]any{"authenticated": true})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.logout")

	if err := h.Svc.Logout(ctx); err != nil {
		l.Error("admin_logout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	c.SetCookie(createCookie(adminCookie, "", "/", time.Unix(0, 0)))

	l.Info("admin_logout_success")
	return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
}

func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"authenticated": h.Svc.IsAuthenticated()})
}
