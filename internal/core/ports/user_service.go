package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// ProfilePatch carries the optional profile update fields. Password here is
// plaintext; the service re-hashes it through the same path as registration.
type ProfilePatch struct {
	Email    *string
	Username *string
	Password *string
}

type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error)
}
