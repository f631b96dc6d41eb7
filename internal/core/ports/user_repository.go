package ports

import (
	"context"

	"github.com/taskforge/task-api/internal/core/domain"
)

// UserPatch carries the fields of a user update. Nil pointers mean the field
// is left untouched. PasswordHash is always a bcrypt hash, never plaintext.
type UserPatch struct {
	Email        *string
	Username     *string
	PasswordHash *string
}

// UserRepository defines the persistence operations for user accounts.
// Email and username uniqueness is ultimately enforced by unique indexes at
// the storage layer; the Taken helpers exist only for friendly error messages.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches either email or username, case-insensitively.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	EnsureIndexes(ctx context.Context) error
}
