package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookinventory/internal/book"
	"bookinventory/internal/config"
	"bookinventory/internal/httpx"
	"bookinventory/internal/platform/googlebooks"
	"bookinventory/internal/platform/logger"
	"bookinventory/internal/platform/postgres"
	"bookinventory/internal/server"
	"bookinventory/internal/todo"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Money fields are plain JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.Open(ctx, cfg.DatabaseDSN, 2*time.Second)
	if err != nil {
		log.WithError(err).WithField("dsn", postgres.RedactDSN(cfg.DatabaseDSN)).Fatal("cannot open database")
	}
	defer dbPool.Close()
	log.Info("database connection OK")

	if cfg.GoogleBooksAPIKey == "" {
		log.Warn("GOOGLE_BOOKS_API_KEY is not set; book-details lookups will fail")
	}
	metadata := googlebooks.NewClient(cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey, cfg.MetadataTimeout, cfg.MetadataRPS, log)

	bookService := book.NewService(book.NewPostgresRepo(dbPool, cfg.DBTimeout), log)
	todoService := todo.NewService(todo.NewPostgresRepo(dbPool, cfg.DBTimeout), log)

	handler := server.NewRouter(
		book.NewHTTPHandler(bookService, metadata, log),
		todo.NewHTTPHandler(todoService, log),
		dbPool,
		log,
		server.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			EnableHSTS:     cfg.EnableHSTS,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			RateLimiter:    httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		},
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("starting server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
