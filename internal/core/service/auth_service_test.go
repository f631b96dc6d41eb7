package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == identifier || u.Username == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) UsernameTaken(_ context.Context, username, excludeID string) (bool, error) {
	for id, u := range r.users {
		if u.Username == username && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) EnsureIndexes(context.Context) error { return nil }

type stubThrottle struct {
	failures map[string]int
	max      int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) TooMany(_ context.Context, identifier string) (bool, error) {
	return t.failures[identifier] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, identifier string) error {
	t.failures[identifier]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, identifier string) error {
	delete(t.failures, identifier)
	return nil
}

func newAuthService(repo ports.UserRepository, throttle ports.LoginThrottle) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, throttle), tokens
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, nil)

	result, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:    "Alice@Example.com",
		Username: "Alice",
		Password: "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if result.User.Email != "alice@example.com" || result.User.Username != "alice" {
		t.Fatalf("expected lowercased identifiers, got %s / %s", result.User.Email, result.User.Username)
	}
	if result.User.PasswordHash == "Str0ng!pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("Str0ng!pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	userID, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token rejected: %v", err)
	}
	if userID != result.User.ID {
		t.Fatalf("token subject %s does not match user %s", userID, result.User.ID)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Email: "bob@example.com", Username: "bob", Password: "Str0ng!pass"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	// Case differs; uniqueness is case-insensitive via lowercasing.
	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "BOB@example.com", Username: "other", Password: "Str0ng!pass"})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("original account modified: %d users", len(repo.users))
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Email: "bob@example.com", Username: "bob", Password: "Str0ng!pass"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), ports.SignupInput{Email: "bob2@example.com", Username: "BOB", Password: "Str0ng!pass"})
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, nil)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Email: "carol@example.com", Username: "carol", Password: "Str0ng!pass"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// By email.
	result, err := svc.Login(context.Background(), "carol@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
	if _, err := tokens.Verify(result.Token); err != nil {
		t.Fatalf("login token rejected: %v", err)
	}

	// By username, mixed case.
	if _, err := svc.Login(context.Background(), "Carol", "Str0ng!pass"); err != nil {
		t.Fatalf("login by username failed: %v", err)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{Email: "dave@example.com", Username: "dave", Password: "Str0ng!pass"})

	// Wrong password and unknown identifier collapse into the same error so
	// the response never reveals which credential was wrong.
	if _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown identifier, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(3)
	svc, _ := newAuthService(repo, throttle)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{Email: "eve@example.com", Username: "eve", Password: "Str0ng!pass"})

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), "eve@example.com", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Window ceiling reached: even the right password is cut off.
	if _, err := svc.Login(context.Background(), "eve@example.com", "Str0ng!pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
