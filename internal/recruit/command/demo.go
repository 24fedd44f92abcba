package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [count]",
		Short: "Seed fake applicant accounts for development",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			count := 10
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("count must be a positive integer, got %q", args[0])
				}
				count = n
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

			created, err := seed.SeedDemo(cmd.Context(), count)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d applicant account(s)\n", len(created))
			return nil
		},
	}
}
