package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/mrqz-remodeling/console-api/migrations"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply and inspect the console database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		upCmd(),
		downCmd(),
		statusCmd(),
		versionCmd(),
		createCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

// withDB opens the postgres connection and runs fn against the embedded migrations
func withDB(fn func(db *sql.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	return fn(db)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := goose.Up(db, "."); err != nil {
					return fmt.Errorf("failed to run up migrations: %w", err)
				}
				fmt.Println("Migrations applied successfully")
				return nil
			})
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := goose.Down(db, "."); err != nil {
					return fmt.Errorf("failed to run down migration: %w", err)
				}
				fmt.Println("Migration rolled back successfully")
				return nil
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := goose.Status(db, "."); err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sql.DB) error {
				if err := goose.Version(db, "."); err != nil {
					return fmt.Errorf("failed to get version: %w", err)
				}
				return nil
			})
		},
	}
}

func createCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new SQL migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goose.SetBaseFS(nil)
			if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
				return fmt.Errorf("failed to create migration: %w", err)
			}
			fmt.Printf("Migration created: %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./migrations", "directory for new migration files")

	return cmd
}
