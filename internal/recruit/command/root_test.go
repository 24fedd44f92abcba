package command_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/heartbeatcoders/recruit/internal/recruit/command"
	"github.com/stretchr/testify/require"
)

func runSeedadmin(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := command.RootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedadmin(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "recruit.db")
	t.Setenv("DATABASE_FILE", dbFile)
	t.Setenv("SEED_ADMIN_PASSWORD", "recruiter")
	t.Setenv("BCRYPT_COST", "4")

	t.Run("create is idempotent", func(t *testing.T) {
		out, err := runSeedadmin(t, "create")
		require.NoError(t, err)
		require.Contains(t, out, "created recruiter account patricia@heartbeatcoders.com")
		require.NotContains(t, out, "$2") // bcrypt hashes never reach the output

		out, err = runSeedadmin(t, "create")
		require.NoError(t, err)
		require.Contains(t, out, "already exists")
	})

	t.Run("list shows the seeded account", func(t *testing.T) {
		out, err := runSeedadmin(t, "list")
		require.NoError(t, err)
		require.Contains(t, out, "1 account(s)")
		require.Contains(t, out, "patricia@heartbeatcoders.com")
		require.Contains(t, out, "Patricia Sichali")
	})

	t.Run("reset succeeds for the administrative account", func(t *testing.T) {
		out, err := runSeedadmin(t, "reset", "patricia@heartbeatcoders.com", "a-new-password")
		require.NoError(t, err)
		require.Contains(t, out, "password reset for patricia@heartbeatcoders.com")
	})

	t.Run("reset misses unknown emails", func(t *testing.T) {
		_, err := runSeedadmin(t, "reset", "nobody@heartbeatcoders.com")
		require.Error(t, err)
		require.Contains(t, err.Error(), "no administrative account")
	})

	t.Run("demo seeds applicants", func(t *testing.T) {
		out, err := runSeedadmin(t, "demo", "3")
		require.NoError(t, err)
		require.Contains(t, out, "seeded 3 applicant account(s)")
	})

	t.Run("demo rejects a bad count", func(t *testing.T) {
		_, err := runSeedadmin(t, "demo", "zero")
		require.Error(t, err)
	})
}

func TestSeedadminCreateRejectsNonAdministrativeRole(t *testing.T) {
	t.Setenv("DATABASE_FILE", filepath.Join(t.TempDir(), "recruit.db"))
	t.Setenv("SEED_ADMIN_PASSWORD", "recruiter")
	t.Setenv("SEED_ADMIN_ROLE", "applicant")

	_, err := runSeedadmin(t, "create")
	require.Error(t, err)
}
