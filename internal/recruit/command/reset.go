package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartbeatcoders/recruit/internal/recruit/store"
)

func resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset EMAIL [NEW_PASSWORD]",
		Short: "Reset an administrative account's password",
		Long: "Overwrites the password of the administrative account with the given email\n" +
			"and revokes its live sessions. Non-administrative accounts are not visible to\n" +
			"this command. When NEW_PASSWORD is omitted it comes from SEED_ADMIN_PASSWORD\n" +
			"or an interactive prompt.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			email := args[0]

			var password string
			if len(args) == 2 {
				password = args[1]
			} else {
				password = envOrDefault("SEED_ADMIN_PASSWORD", "")
			}
			if password == "" {
				var err error
				password, err = promptPassword("new password: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("a non-empty password is required")
			}

			seed, st, err := openSeedService()
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			user, err := seed.ResetPassword(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("no administrative account with email %s", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "password reset for %s (%s); live sessions revoked\n", user.Email, user.ID)
			return nil
		},
	}
}
