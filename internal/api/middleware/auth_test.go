package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
	"github.com/taskforge/task-api/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByIdentifier(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailTaken(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) UsernameTaken(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Update(context.Context, string, ports.UserPatch) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EnsureIndexes(context.Context) error { return nil }

func newGateFixture(ttl time.Duration) (*service.TokenService, *stubUserRepo) {
	tokens := service.NewTokenService("secret", ttl)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@example.com", Username: "alice"},
	}}
	return tokens, repo
}

func request(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	tokens, repo := newGateFixture(time.Hour)
	signed, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := request("Bearer " + signed)

	called := false
	handler := Auth(tokens, repo)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserKey).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Fatalf("identity not attached: %v", c.Get(UserKey))
		}
		if c.Get(UserIDKey) != "user-1" {
			t.Fatalf("user id not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_Failures(t *testing.T) {
	tokens, repo := newGateFixture(time.Hour)
	gate := Auth(tokens, repo)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	deletedUser, err := tokens.Issue("user-gone")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "missing authorization header"},
		{"wrong scheme", "Token abc", "invalid authorization header"},
		{"malformed token", "Bearer not-a-token", "invalid token"},
		{"expired token", "Bearer " + expired, "token expired"},
		{"deleted user", "Bearer " + deletedUser, "user no longer exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := request(tc.header)
			err := gate(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})(c)

			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", he.Code)
			}
			if he.Message != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, he.Message)
			}
		})
	}
}

func TestOptionalAuth_ProceedsAnonymously(t *testing.T) {
	tokens, repo := newGateFixture(time.Hour)

	for _, header := range []string{"", "Bearer garbage"} {
		c, rec := request(header)

		called := false
		handler := OptionalAuth(tokens, repo)(func(c echo.Context) error {
			called = true
			if c.Get(UserKey) != nil {
				t.Fatalf("expected no identity, got %v", c.Get(UserKey))
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("anonymous request rejected (header %q)", header)
		}
	}
}

func TestOptionalAuth_AttachesIdentityWhenValid(t *testing.T) {
	tokens, repo := newGateFixture(time.Hour)
	signed, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := request("Bearer " + signed)
	handler := OptionalAuth(tokens, repo)(func(c echo.Context) error {
		user, ok := c.Get(UserKey).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Fatalf("identity not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
