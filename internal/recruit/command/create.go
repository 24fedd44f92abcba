package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartbeatcoders/recruit/internal/recruit/domain"
	"github.com/heartbeatcoders/recruit/internal/recruit/service"
)

func createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the seed administrative account",
		Long: "Creates the administrative account described by the SEED_ADMIN_* environment\n" +
			"variables. Safe to re-run: if the email already exists the existing account is\n" +
			"left untouched. The password comes from SEED_ADMIN_PASSWORD or an interactive\n" +
			"prompt; it is never echoed or printed back.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			role, err := domain.ParseRole(envOrDefault("SEED_ADMIN_ROLE", string(domain.RoleRecruiter)))
			if err != nil {
				return err
			}

			password := envOrDefault("SEED_ADMIN_PASSWORD", "")
			if password == "" {
				password, err = promptPassword("password: ")
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

			in := service.CreateAdminInput{
				FirstName: envOrDefault("SEED_ADMIN_FIRST_NAME", "Patricia"),
				LastName:  envOrDefault("SEED_ADMIN_LAST_NAME", "Sichali"),
				Email:     envOrDefault("SEED_ADMIN_EMAIL", "patricia@heartbeatcoders.com"),
				Phone:     envOrDefault("SEED_ADMIN_PHONE", "+26599123456"),
				Password:  password,
				Role:      role,
			}

			user, created, err := seed.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s (%s)\n", user.Role, user.Email, user.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists (%s); nothing changed\n", user.Email, user.ID)
			}
			return nil
		},
	}
}
