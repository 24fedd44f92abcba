package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/pkg/cryptox"
	"github.com/heartbeatcoders/recruit/pkg/idx"
)

// ErrNotAdministrative reports an attempt to seed an account with a role
// outside the administrative set.
var ErrNotAdministrative = errors.New("role is not administrative")

// SeedService backs the out-of-band seedadmin utility: bootstrap a
// privileged account and maintain existing ones.
type SeedService struct {
	Store    store.Store
	Hasher   cryptox.Hasher
	Location *time.Location // timezone for created_at stamps
}

type CreateAdminInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      domain.Role
}

// CreateAdmin creates the configured privileged account. Idempotent with
// respect to email: if the email already exists the existing record is
// returned unchanged (no duplicate, no password overwrite) and created is
// false. The insert runs in a transaction so a persistence failure leaves
// nothing behind.
func (s *SeedService) CreateAdmin(ctx context.Context, in CreateAdminInput) (u domain.User, created bool, err error) {
	if !in.Role.Administrative() {
		return domain.User{}, false, ErrNotAdministrative
	}

	email := normalizeEmail(in.Email)
	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, fmt.Errorf("create admin: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("create admin: %w", err)
	}

	u = domain.User{
		ID:           idx.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    s.now(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	if err != nil {
		// Lost a race with a concurrent create: report the winner unchanged.
		if errors.Is(err, store.ErrAlreadyExists) {
			winner, lookupErr := s.Store.Users().GetUserByEmail(ctx, email)
			if lookupErr == nil {
				return winner, false, nil
			}
		}
		return domain.User{}, false, fmt.Errorf("create admin: %w", err)
	}

	return u, true, nil
}

// ListUsers enumerates all accounts, newest first. Read-only.
func (s *SeedService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// ResetPassword overwrites the stored hash for an account matched by exact
// email AND membership in the administrative role set. A miss on either
// reports store.ErrNotFound and performs no write. On success the whole
// update, including revocation of the account's live sessions, commits or
// rolls back as one transaction.
func (s *SeedService) ResetPassword(ctx context.Context, email, newPassword string) (domain.User, error) {
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("reset password: %w", err)
	}

	var u domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetUserByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return err
		}
		if !u.Role.Administrative() {
			return store.ErrNotFound
		}
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		// Live sessions die with the old password.
		return tx.Sessions().RevokeAllUserSessions(ctx, u.ID)
	})
	if err != nil {
		return domain.User{}, err
	}

	u.PasswordHash = hash
	return u, nil
}

// SeedDemo inserts n fake applicant accounts for development environments.
// Accounts whose generated email happens to collide are skipped.
func (s *SeedService) SeedDemo(ctx context.Context, n int) ([]domain.User, error) {
	faker := gofakeit.New(0)

	var created []domain.User
	for range n {
		password, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return created, fmt.Errorf("seed demo: %w", err)
		}
		hash, err := s.Hasher.Hash(password)
		if err != nil {
			return created, fmt.Errorf("seed demo: %w", err)
		}

		u := domain.User{
			ID:           idx.New().String(),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Email:        normalizeEmail(faker.Email()),
			Phone:        faker.Phone(),
			PasswordHash: hash,
			Role:         domain.RoleApplicant,
			IsActive:     true,
			CreatedAt:    s.now(),
		}

		if err := s.Store.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("seed demo: %w", err)
		}
		created = append(created, u)
	}

	return created, nil
}

func (s *SeedService) now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now().UTC()
}
