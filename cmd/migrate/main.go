package main

import (
	"fmt"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetly/internal/infrastructure/database"
	"github.com/johnquangdev/meetly/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dir string
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the Meetly database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "Migrations directory (defaults to DB_MIGRATIONS_DIR)")

	root.AddCommand(
		newApplyCommand("up", "Apply pending migrations", migrate.Up, &dir),
		newApplyCommand("down", "Roll back migrations", migrate.Down, &dir),
		newStatusCommand(),
	)
	return root
}

func newApplyCommand(use, short string, direction migrate.MigrationDirection, dir *string) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			source := *dir
			if source == "" {
				source = cfg.Database.MigrationsDir
			}

			n, err := database.Migrate(db, source, direction, steps)
			if err != nil {
				return err
			}
			log.Printf("✅ Successfully applied %d migration(s) %s!\n", n, use)
			return nil
		},
	}
	if direction == migrate.Down {
		cmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back (0 for all)")
	}
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			records, err := database.MigrationStatus(db)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Id, r.AppliedAt.Format("2006-01-02 15:04:05")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Migration", "Applied at"}, rows))
			return nil
		},
	}
}
