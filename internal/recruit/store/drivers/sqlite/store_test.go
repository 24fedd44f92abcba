package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/internal/recruit/store/drivers/sqlite"
	"github.com/heartbeatcoders/recruit/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(email string, role domain.Role, createdAt time.Time) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Phone:        "+265999000000",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash",
		Role:         role,
		IsActive:     true,
		CreatedAt:    createdAt,
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st := newTestStore(t)

	// A second run against the initialized schema must be a no-op.
	require.NoError(t, st.ApplyMigrations())
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := testUser("alice@example.com", domain.RoleRecruiter, time.Now().UTC())
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, domain.RoleRecruiter, byID.Role)
	require.True(t, byID.IsActive)
	require.WithinDuration(t, u.CreatedAt, byID.CreatedAt, time.Second)

	byEmail, err := st.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsersNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Users().UpdatePasswordHash(ctx, idx.New().String(), "hash")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUniqueEmailConflict(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	first := testUser("dup@example.com", domain.RoleApplicant, time.Now().UTC())
	require.NoError(t, st.Users().CreateUser(ctx, first))

	second := testUser("dup@example.com", domain.RoleApplicant, time.Now().UTC())
	err := st.Users().CreateUser(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestListUsersOrdering(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	oldest := testUser("first@example.com", domain.RoleApplicant, base)
	middle := testUser("second@example.com", domain.RoleApplicant, base.Add(10*time.Minute))
	newest := testUser("third@example.com", domain.RoleApplicant, base.Add(20*time.Minute))

	for _, u := range []domain.User{middle, oldest, newest} {
		require.NoError(t, st.Users().CreateUser(ctx, u))
	}

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, newest.Email, users[0].Email)
	require.Equal(t, middle.Email, users[1].Email)
	require.Equal(t, oldest.Email, users[2].Email)
}

func TestListUsersEmptyStore(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestOptionalPhone(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := testUser("nophone@example.com", domain.RoleApplicant, time.Now().UTC())
	u.Phone = ""
	require.NoError(t, st.Users().CreateUser(ctx, u))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.Phone)
}

func TestSessionsLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	owner := testUser("owner@example.com", domain.RoleRecruiter, time.Now().UTC())
	require.NoError(t, st.Users().CreateUser(ctx, owner))

	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: "fingerprint-1",
		UserID:    owner.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, sess))

	t.Run("live session resolves", func(t *testing.T) {
		got, err := st.Sessions().GetLiveSessionByTokenHash(ctx, "fingerprint-1")
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.UserID)
	})

	t.Run("expired session does not resolve", func(t *testing.T) {
		expired := domain.Session{
			ID:        idx.New().String(),
			TokenHash: "fingerprint-expired",
			UserID:    owner.ID,
			ExpiresAt: time.Now().UTC().Add(-time.Minute),
			CreatedAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, expired))

		_, err := st.Sessions().GetLiveSessionByTokenHash(ctx, "fingerprint-expired")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("revoked session does not resolve", func(t *testing.T) {
		require.NoError(t, st.Sessions().RevokeSession(ctx, "fingerprint-1"))

		_, err := st.Sessions().GetLiveSessionByTokenHash(ctx, "fingerprint-1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("bulk revocation covers all user sessions", func(t *testing.T) {
		fresh := domain.Session{
			ID:        idx.New().String(),
			TokenHash: "fingerprint-2",
			UserID:    owner.ID,
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, fresh))
		require.NoError(t, st.Sessions().RevokeAllUserSessions(ctx, owner.ID))

		_, err := st.Sessions().GetLiveSessionByTokenHash(ctx, "fingerprint-2")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("housekeeping removes dead rows", func(t *testing.T) {
		require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx))
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boom := testUser("boom@example.com", domain.RoleRecruiter, time.Now().UTC())
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, boom); err != nil {
			return err
		}
		return context.Canceled // any error should roll the insert back
	})
	require.Error(t, err)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := testUser("committed@example.com", domain.RoleRecruiter, time.Now().UTC())
	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	require.NoError(t, err)

	_, err = st.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
}
