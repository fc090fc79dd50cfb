package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cronbit",
		Short:         "Compile, inspect, and run extended cron expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newValidateCommand())
	root.AddCommand(newNextCommand())
	root.AddCommand(newRunCommand())

	return root
}
