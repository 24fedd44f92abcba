package store

import (
	"context"
	"errors"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and testable, and make
// it obvious which operations share a transaction.
type Store interface {
	Users() Users
	Sessions() Sessions

	// ApplyMigrations brings the schema up to date. Safe to run against an
	// already-initialized database.
	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up the unique natural key, used during login and
	// by the seed utility.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash overwrites the stored bcrypt hash.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetActive flips the is_active gate. Accounts are deactivated, never
	// physically deleted.
	SetActive(ctx context.Context, userID string, active bool) error

	// ListUsers returns all users ordered by creation time descending.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CountUsers returns the number of user rows.
	CountUsers(ctx context.Context) (int64, error)
}

type Sessions interface {
	// CreateSession stores a new session record (token_hash is the sha256
	// fingerprint of the opaque cookie token).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetLiveSessionByTokenHash returns a not-revoked, not-expired session
	// by fingerprint.
	GetLiveSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// RevokeSession flips revoked=1 for the session with the given fingerprint.
	RevokeSession(ctx context.Context, hash string) error

	// RevokeAllUserSessions bulk revocation for a user (e.g., password reset).
	RevokeAllUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
