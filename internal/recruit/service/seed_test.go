package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/service"
	"github.com/heartbeatcoders/recruit/internal/recruit/store"
	"github.com/heartbeatcoders/recruit/internal/recruit/store/drivers/sqlite"
	"github.com/heartbeatcoders/recruit/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// testHasher keeps bcrypt cheap so the suite stays fast.
var testHasher = cryptox.NewHasher(cryptox.MinCost)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func adminInput() service.CreateAdminInput {
	return service.CreateAdminInput{
		FirstName: "Patricia",
		LastName:  "Sichali",
		Email:     "patricia@heartbeatcoders.com",
		Phone:     "+26599123456",
		Password:  "recruiter",
		Role:      domain.RoleRecruiter,
	}
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the configured account", func(t *testing.T) {
		seed := &service.SeedService{Store: newTestStore(t), Hasher: testHasher}

		u, created, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)
		require.True(t, created)
		require.NotEmpty(t, u.ID)
		require.Equal(t, domain.RoleRecruiter, u.Role)
		require.True(t, u.IsActive)

		// Stored hash verifies against the configured password and holds
		// no plaintext.
		require.NotEqual(t, "recruiter", u.PasswordHash)
		require.NoError(t, testHasher.Verify("recruiter", u.PasswordHash))
	})

	t.Run("second call returns the existing record unchanged", func(t *testing.T) {
		st := newTestStore(t)
		seed := &service.SeedService{Store: st, Hasher: testHasher}

		first, created, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)
		require.True(t, created)

		// Even with a different password configured, the existing row wins.
		in := adminInput()
		in.Password = "different-password"
		second, created, err := seed.CreateAdmin(ctx, in)
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, first.ID, second.ID)
		require.Equal(t, first.PasswordHash, second.PasswordHash)

		count, err := st.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
	})

	t.Run("rejects non-administrative roles", func(t *testing.T) {
		seed := &service.SeedService{Store: newTestStore(t), Hasher: testHasher}

		in := adminInput()
		in.Role = domain.RoleApplicant
		_, _, err := seed.CreateAdmin(ctx, in)
		require.ErrorIs(t, err, service.ErrNotAdministrative)
	})

	t.Run("stamps created_at in the configured timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("Africa/Blantyre")
		require.NoError(t, err)

		seed := &service.SeedService{Store: newTestStore(t), Hasher: testHasher, Location: loc}
		u, _, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)
		require.Equal(t, "Africa/Blantyre", u.CreatedAt.Location().String())
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites the hash for an administrative account", func(t *testing.T) {
		st := newTestStore(t)
		seed := &service.SeedService{Store: st, Hasher: testHasher}

		created, _, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)

		u, err := seed.ResetPassword(ctx, created.Email, "new-password")
		require.NoError(t, err)
		require.Equal(t, created.ID, u.ID)

		stored, err := st.Users().GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		require.NoError(t, testHasher.Verify("new-password", stored.PasswordHash))
		require.ErrorIs(t, testHasher.Verify("recruiter", stored.PasswordHash), cryptox.ErrPasswordMismatch)
	})

	t.Run("unknown email fails without writes", func(t *testing.T) {
		st := newTestStore(t)
		seed := &service.SeedService{Store: st, Hasher: testHasher}

		_, _, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)

		before, err := st.Users().CountUsers(ctx)
		require.NoError(t, err)

		_, err = seed.ResetPassword(ctx, "missing@heartbeatcoders.com", "whatever")
		require.ErrorIs(t, err, store.ErrNotFound)

		after, err := st.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("non-administrative accounts are invisible to reset", func(t *testing.T) {
		st := newTestStore(t)
		accounts := &service.AccountService{Store: st, Hasher: testHasher}
		seed := &service.SeedService{Store: st, Hasher: testHasher}

		applicant, err := accounts.Register(ctx, service.RegisterInput{
			FirstName: "App",
			LastName:  "Licant",
			Email:     "applicant@example.com",
			Password:  "password",
		})
		require.NoError(t, err)

		_, err = seed.ResetPassword(ctx, applicant.Email, "hijacked")
		require.ErrorIs(t, err, store.ErrNotFound)

		// The applicant's password is untouched.
		_, err = accounts.Authenticate(ctx, applicant.Email, "password")
		require.NoError(t, err)
	})

	t.Run("revokes live sessions of the account", func(t *testing.T) {
		st := newTestStore(t)
		seed := &service.SeedService{Store: st, Hasher: testHasher}
		sessions := &service.SessionService{Store: st}

		created, _, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)

		token, _, err := sessions.Issue(ctx, created)
		require.NoError(t, err)
		require.False(t, sessions.Resolve(ctx, token).IsGuest())

		_, err = seed.ResetPassword(ctx, created.Email, "rotated")
		require.NoError(t, err)
		require.True(t, sessions.Resolve(ctx, token).IsGuest())
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store lists zero users without error", func(t *testing.T) {
		seed := &service.SeedService{Store: newTestStore(t), Hasher: testHasher}

		users, err := seed.ListUsers(ctx)
		require.NoError(t, err)
		require.Empty(t, users)
	})

	t.Run("newest first", func(t *testing.T) {
		st := newTestStore(t)
		seed := &service.SeedService{Store: st, Hasher: testHasher}

		_, _, err := seed.CreateAdmin(ctx, adminInput())
		require.NoError(t, err)

		demo, err := seed.SeedDemo(ctx, 3)
		require.NoError(t, err)
		require.Len(t, demo, 3)

		users, err := seed.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 4)
		for i := 1; i < len(users); i++ {
			require.False(t, users[i-1].CreatedAt.Before(users[i].CreatedAt))
		}
	})
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seed := &service.SeedService{Store: st, Hasher: testHasher}

	created, err := seed.SeedDemo(ctx, 5)
	require.NoError(t, err)
	require.Len(t, created, 5)

	for _, u := range created {
		require.Equal(t, domain.RoleApplicant, u.Role)
		require.NotEmpty(t, u.Email)
		require.NotEmpty(t, u.PasswordHash)
	}
}
