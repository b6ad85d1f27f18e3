package cli

import (
	"fmt"

	"productivity/internal/app"
	"productivity/internal/config"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command with up, down and status.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", func(cmd *cobra.Command, p *goose.Provider) error {
			results, err := p.Up(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %05d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations to apply")
			}
			return nil
		}),
		migrateSubcommand("down", "Roll back the latest migration", func(cmd *cobra.Command, p *goose.Provider) error {
			r, err := p.Down(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DOWN %05d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration)
			return nil
		}),
		migrateSubcommand("status", "Show applied and pending migrations", func(cmd *cobra.Command, p *goose.Provider) error {
			statuses, err := p.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				applied := "pending"
				if s.State == goose.StateApplied {
					applied = s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%05d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
			}
			return nil
		}),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(*cobra.Command, *goose.Provider) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			p, closeDB, err := app.OpenMigrations(cfg)
			if err != nil {
				return err
			}
			defer closeDB()
			return run(cmd, p)
		},
	}
}
