package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// Context keys under which the authorization gate stores the resolved
// identity.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

// Auth is the authorization gate: it requires a bearer token, verifies it,
// resolves the embedded user id to a live user record and attaches the
// identity to the request context. Any failure rejects with 401.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveIdentity(c, tokens, users)
			if err != nil {
				return err
			}
			c.Set(UserKey, user)
			c.Set(UserIDKey, user.ID)
			return next(c)
		}
	}
}

// OptionalAuth runs the same steps as Auth but proceeds anonymously on any
// failure instead of rejecting. Handlers behind it must tolerate a missing
// identity. No route currently mounts it; the contract exists for endpoints
// that behave differently for anonymous callers.
func OptionalAuth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, err := resolveIdentity(c, tokens, users); err == nil {
				c.Set(UserKey, user)
				c.Set(UserIDKey, user.ID)
			}
			return next(c)
		}
	}
}

func resolveIdentity(c echo.Context, tokens ports.TokenService, users ports.UserRepository) (*domain.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	userID, err := tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token expired")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	// A token can outlive its account; re-resolving proves the user still
	// exists before any handler runs.
	user, err := users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
		}
		return nil, err
	}
	return user, nil
}
