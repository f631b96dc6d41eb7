package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
}

// NewAuthService wires the credential store. throttle may be nil, in which
// case failed-login throttling is disabled.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle}
}

// Signup registers a new account and logs it in. The uniqueness pre-checks
// exist for friendly errors only; the storage layer's unique indexes are the
// actual arbiter, so a racing duplicate still fails at Create with the same
// sentinel.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if taken, err := s.repo.EmailTaken(ctx, email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}
	if taken, err := s.repo.UsernameTaken(ctx, username, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email or username. Unknown identifier and wrong
// password collapse into the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, s.failed(ctx, identifier)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failed(ctx, identifier)
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, identifier)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) failed(ctx context.Context, identifier string) error {
	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, identifier)
	}
	return domain.ErrInvalidCredentials
}
