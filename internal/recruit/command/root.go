// Package command contains the seedadmin CLI command constructors.
package command

import (
	"github.com/spf13/cobra"

	"github.com/heartbeatcoders/recruit/internal/recruit/app"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seedadmin [command] [flags]",
		Short:        "Maintain privileged recruitment accounts out of band",
		Version:      app.BuildVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	cmd.AddCommand(
		createCommand(),
		listCommand(),
		resetCommand(),
		demoCommand(),
	)

	return cmd
}
