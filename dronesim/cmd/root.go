// Package cmd provides the command-line interface of dronesim.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the dronesim command with all its subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dronesim",
		Short: "dronesim distributes a packet stream over a fleet of drones.",
		Long: `dronesim simulates drones that process an incoming packet ` +
			`stream tick by tick. Each drone has a drifting capacity and a ` +
			`bounded queue. Packets nobody can take are lost.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSlice("env", nil,
		"Read DRONESIM_* settings from these .env files")

	root.AddCommand(
		newRunCommand(),
		newDistributeCommand(),
		newReportCommand(),
	)

	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}
