package command

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			seed, st, err := openSeedService()
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			users, err := seed.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d account(s)\n", len(users))
			if len(users) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tACTIVE\tCREATED")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
					u.Email, u.FullName(), u.Role, u.IsActive, u.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}
