package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"bookinventory/internal/platform/logger"
	"bookinventory/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logger.New("info", "text")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("migrate failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dirFlag string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the books and todos schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dirFlag, "dir", "", "Migrations directory (default: $MIGRATIONS_DIR or db/migrations)")

	withDB := func(run func(db *sql.DB, dir string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(dirFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			pool, err := postgres.Open(ctx, s.DSN, 5*time.Second)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", postgres.RedactDSN(s.DSN), err)
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			return run(db, s.Dir)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Up(db, dir); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				log.Info("migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, dir string) error {
				if err := goose.Down(db, dir); err != nil {
					return fmt.Errorf("rollback migration: %w", err)
				}
				log.Info("migration rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *sql.DB, dir string) error {
				return goose.Status(db, dir)
			}),
		},
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create a new SQL migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := dirFlag
				if dir == "" {
					s, err := resolveSettings("")
					if err != nil {
						return err
					}
					dir = s.Dir
				}
				if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
					return fmt.Errorf("create migration: %w", err)
				}
				log.WithFields(logrus.Fields{"name": args[0], "dir": dir}).Info("migration created")
				return nil
			},
		},
	)
	return root
}
