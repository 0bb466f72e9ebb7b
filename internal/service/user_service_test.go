package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/repository"
)

type mockUserRepo struct {
	users map[string]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) UpdateFields(_ context.Context, email string, fields map[string]any) error {
	user, ok := m.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		user.Name = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		user.Phone = v.(string)
	}
	if v, ok := fields["location"]; ok {
		user.Location = v.(string)
	}
	if v, ok := fields["preferred_crop"]; ok {
		user.PreferredCrop = v.(string)
	}
	m.users[email] = user
	return nil
}

func newTestUserService(repo repository.UserRepository) *UserService {
	return NewUserService(zap.NewNop(), repo, nil)
}

func TestUserService_SignupDefaults(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Ravi@Example.COM ",
		Name:     "Ravi",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "ravi@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Location != domain.DefaultLocation || user.PreferredCrop != domain.DefaultCrop {
		t.Fatalf("expected profile defaults, got %q / %q", user.Location, user.PreferredCrop)
	}
	if !user.HasDefaultProfile() {
		t.Fatal("freshly defaulted profile should read as default")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-pass")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserService_SignupRejectsDuplicateAndWeakPassword(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "short"}); err != ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "", Password: "secret-pass"}); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "A@X.com", Password: "secret-pass"}); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "a@x.com", "secret-pass")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %q", user.Email)
	}

	if _, err := svc.Authenticate(context.Background(), "a@x.com", "wrong-pass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@x.com", "secret-pass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
}

func TestUserService_AuthenticateRateLimited(t *testing.T) {
	repo := newMockUserRepo()
	limiter := NewLoginRateLimiter(time.Minute, 3)
	svc := NewUserService(zap.NewNop(), repo, limiter)

	for i := 0; i < 3; i++ {
		if _, err := svc.Authenticate(context.Background(), "a@x.com", "whatever1"); err != ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, err := svc.Authenticate(context.Background(), "a@x.com", "whatever1"); err != ErrRateLimited {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	// Other accounts are not affected.
	if _, err := svc.Authenticate(context.Background(), "b@x.com", "whatever1"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for other key, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@x.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	location := "Madurai"
	crop := "Sugarcane"
	fields, err := svc.UpdateProfile(context.Background(), "a@x.com", ProfileUpdateInput{
		Location:      &location,
		PreferredCrop: &crop,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(fields) != 2 || fields["location"] != "Madurai" || fields["preferred_crop"] != "Sugarcane" {
		t.Fatalf("unexpected updated fields: %v", fields)
	}

	user, err := svc.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.HasDefaultProfile() {
		t.Fatal("profile should no longer be default after update")
	}

	empty := "   "
	if _, err := svc.UpdateProfile(context.Background(), "a@x.com", ProfileUpdateInput{Name: &empty}); err != ErrNoFieldsToUpdate {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), "nobody@x.com", ProfileUpdateInput{Location: &location}); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
