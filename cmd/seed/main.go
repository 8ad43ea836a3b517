package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"bookinventory/internal/book"
	"bookinventory/internal/config"
	"bookinventory/internal/platform/logger"
	"bookinventory/internal/platform/postgres"
	"bookinventory/internal/todo"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		bookCount int
		todoCount int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Insert sample books and todos for local development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			ctx := cmd.Context()
			pool, err := postgres.Open(ctx, cfg.DatabaseDSN, 5*time.Second)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", postgres.RedactDSN(cfg.DatabaseDSN), err)
			}
			defer pool.Close()

			rng := rand.New(rand.NewSource(seed))
			now := time.Now().UTC()
			return run(ctx, log,
				book.NewPostgresRepo(pool, cfg.DBTimeout), generateBooks(rng, bookCount, now),
				todo.NewPostgresRepo(pool, cfg.DBTimeout), generateTodos(rng, todoCount, now),
			)
		},
	}

	cmd.Flags().IntVar(&bookCount, "books", 50, "Number of books to insert")
	cmd.Flags().IntVar(&todoCount, "todos", 10, "Number of todos to insert")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	return cmd
}

func run(ctx context.Context, log *logrus.Logger, books book.Repository, bs []book.Book, todos todo.Repository, ts []todo.Todo) error {
	for i := range bs {
		if err := books.Create(ctx, &bs[i]); err != nil {
			return fmt.Errorf("insert book %d: %w", i, err)
		}
		if (i+1)%100 == 0 {
			log.Infof("inserted %d/%d books", i+1, len(bs))
		}
	}
	for i := range ts {
		if err := todos.Create(ctx, &ts[i]); err != nil {
			return fmt.Errorf("insert todo %d: %w", i, err)
		}
	}

	log.WithFields(logrus.Fields{"books": len(bs), "todos": len(ts)}).Info("seed complete")
	return nil
}
