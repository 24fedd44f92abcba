package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/pkg/cryptox"
	"github.com/heartbeatcoders/recruit/pkg/idx"
	"github.com/heartbeatcoders/recruit/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// deactivated accounts alike, so a login response can't be used to
	// probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("email already registered")
)

// AccountService handles registration and credential checks.
type AccountService struct {
	Store    store.Store
	Hasher   cryptox.Hasher
	Location *time.Location // timezone for created_at stamps
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Register creates a new applicant account. Uniqueness of the email rides on
// the store's unique constraint, not an application-level check.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         domain.RoleApplicant,
		IsActive:     true,
		CreatedAt:    s.now(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	slogx.FromContext(ctx).Info("account registered", "user_id", u.ID, "role", u.Role.String())
	return u, nil
}

// Authenticate verifies an email/password pair. Deactivated accounts are
// non-authenticatable regardless of the password.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if !u.IsActive {
		return domain.User{}, ErrInvalidCredentials
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("authenticate: %w", err)
	}

	return u, nil
}

// GetUserByID fetches a user by id.
func (s *AccountService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers enumerates all accounts, newest first.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *AccountService) now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
