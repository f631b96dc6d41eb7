package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// UserService implements profile reads and updates.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the supplied fields only. Uniqueness checks exclude
// the user's own record. A password change is hashed here, exactly once, so
// an already-hashed value never passes through bcrypt again.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.User, error) {
	var repoPatch ports.UserPatch

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		taken, err := s.repo.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
		repoPatch.Email = &email
	}

	if patch.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*patch.Username))
		taken, err := s.repo.UsernameTaken(ctx, username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
		repoPatch.Username = &username
	}

	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		repoPatch.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, userID, repoPatch)
}
