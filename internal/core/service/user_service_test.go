package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

func strptr(s string) *string { return &s }

func seedUser(t *testing.T, repo *stubUserRepo, email, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	seeded := seedUser(t, repo, "alice@example.com", "alice", "pass")

	user, err := svc.Profile(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	seeded := seedUser(t, repo, "bob@example.com", "bob", "oldpass")
	oldHash := repo.users[seeded.ID].PasswordHash

	if _, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.ProfilePatch{Password: strptr("N3w!passw0rd")}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	newHash := repo.users[seeded.ID].PasswordHash
	if newHash == oldHash {
		t.Fatalf("password hash unchanged")
	}
	if newHash == "N3w!passw0rd" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("N3w!passw0rd")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_UpdateProfile_HashUntouchedWithoutPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	seeded := seedUser(t, repo, "carol@example.com", "carol", "pass")
	oldHash := repo.users[seeded.ID].PasswordHash

	// A save that does not touch the password must not re-hash; running the
	// stored hash through bcrypt again would corrupt it.
	if _, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.ProfilePatch{Username: strptr("caroline")}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if repo.users[seeded.ID].PasswordHash != oldHash {
		t.Fatalf("password hash changed on a username-only update")
	}
	if repo.users[seeded.ID].Username != "caroline" {
		t.Fatalf("username not updated")
	}
}

func TestUserService_UpdateProfile_UniquenessExcludesSelf(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)
	alice := seedUser(t, repo, "alice@example.com", "alice", "pass")
	seedUser(t, repo, "bob@example.com", "bob", "pass")

	// Re-submitting your own current username is not a conflict.
	if _, err := svc.UpdateProfile(context.Background(), alice.ID, ports.ProfilePatch{Username: strptr("alice")}); err != nil {
		t.Fatalf("self update rejected: %v", err)
	}

	// Taking someone else's is.
	if _, err := svc.UpdateProfile(context.Background(), alice.ID, ports.ProfilePatch{Username: strptr("bob")}); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), alice.ID, ports.ProfilePatch{Email: strptr("bob@example.com")}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.UpdateProfile(context.Background(), "missing", ports.ProfilePatch{Username: strptr("ghost")}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
