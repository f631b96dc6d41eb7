package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// SignupInput carries the already-validated registration payload.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// AuthResult pairs a freshly issued token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	// Login accepts an email or a username as identifier.
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
}
