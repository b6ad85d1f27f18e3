package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command. Without a subcommand it serves
// the API.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "productivity",
		Short:         "Productivity API",
		Long:          "Owner-scoped CRUD backend for tasks, projects, courses, lessons, books, notes, habits, habit logs and goals.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}
