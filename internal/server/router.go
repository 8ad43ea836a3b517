package server

import (
	"context"
	"net/http"
	"time"

	"bookinventory/internal/book"
	"bookinventory/internal/httpx"
	"bookinventory/internal/todo"

	"github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	EnableHSTS     bool
	MaxBodyBytes   int64
	RateLimiter    *httpx.RateLimitMiddleware
}

// NewRouter registers every route and wraps the mux in the middleware chain.
func NewRouter(books *book.HTTPHandler, todos *todo.HTTPHandler, db Pinger, log *logrus.Logger, opts Options) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.WithError(err).Warn("readiness check failed")
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /api/books/all-books", books.List)
	router.HandleFunc("GET /api/books/search", books.Search)
	router.HandleFunc("GET /api/books/sold-in-month", books.SoldInMonth)
	router.HandleFunc("GET /api/books/active-inventory-count", books.ActiveInventoryCount)
	router.HandleFunc("GET /api/books/financial-overview", books.FinancialOverview)
	router.HandleFunc("GET /api/books/inventory-status", books.InventoryStatus)
	router.HandleFunc("GET /api/books/book-details", books.Details)
	router.HandleFunc("POST /api/books/create-book", books.Create)
	router.HandleFunc("GET /api/books/{id}", books.Get)
	router.HandleFunc("PUT /api/books/{id}", books.Update)
	router.HandleFunc("DELETE /api/books/{id}", books.Delete)

	router.HandleFunc("GET /api/todos", todos.List)
	router.HandleFunc("POST /api/todos", todos.Create)
	router.HandleFunc("PUT /api/todos/{id}", todos.Update)
	router.HandleFunc("DELETE /api/todos/{id}", todos.Delete)

	middleware := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(opts.EnableHSTS),
		httpx.CORSMiddleware(opts.AllowedOrigins),
	}
	if opts.MaxBodyBytes > 0 {
		middleware = append(middleware, httpx.RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	}
	if opts.RateLimiter != nil {
		middleware = append(middleware, opts.RateLimiter.Middleware)
	}

	return httpx.Chain(router, middleware...)
}
