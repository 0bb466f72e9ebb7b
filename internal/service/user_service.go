package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"grama-vaani/internal/domain"
	"grama-vaani/internal/repository"
)

// UserService coordinates signup, login and profile updates.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	rateLimiter LoginRateLimiter
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be 8-72 characters")
	ErrNoFieldsToUpdate   = errors.New("no fields provided for update")
	ErrRateLimited        = errors.New("rate limited")
)

func NewUserService(logger *zap.Logger, users repository.UserRepository, rateLimiter LoginRateLimiter) *UserService {
	if rateLimiter == nil {
		rateLimiter = NewLoginRateLimiter(loginWindow, loginMaxAttempts)
	}
	return &UserService{logger: logger, users: users, rateLimiter: rateLimiter}
}

type SignupInput struct {
	Email         string
	Name          string
	Phone         string
	Password      string
	Location      string
	PreferredCrop string
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if n := len(input.Password); n < 8 || n > 72 {
		return domain.User{}, ErrWeakPassword
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = domain.DefaultLocation
	}
	crop := strings.TrimSpace(input.PreferredCrop)
	if crop == "" {
		crop = domain.DefaultCrop
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Email:         emailAddr,
		Name:          strings.TrimSpace(input.Name),
		Phone:         strings.TrimSpace(input.Phone),
		Location:      location,
		PreferredCrop: crop,
		PasswordHash:  string(hashBytes),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if s.rateLimiter != nil && !s.rateLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetByEmail resolves the authenticated account for request handling.
func (s *UserService) GetByEmail(ctx context.Context, emailAddr string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

type ProfileUpdateInput struct {
	Name          *string
	Phone         *string
	Location      *string
	PreferredCrop *string
}

// UpdateProfile applies a partial update and returns the fields it set.
func (s *UserService) UpdateProfile(ctx context.Context, emailAddr string, input ProfileUpdateInput) (map[string]any, error) {
	fields := make(map[string]any)
	setIf := func(key string, val *string) {
		if val != nil && strings.TrimSpace(*val) != "" {
			fields[key] = strings.TrimSpace(*val)
		}
	}
	setIf("name", input.Name)
	setIf("phone", input.Phone)
	setIf("location", input.Location)
	setIf("preferred_crop", input.PreferredCrop)

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.users.UpdateFields(ctx, normalizeEmail(emailAddr), fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return fields, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
