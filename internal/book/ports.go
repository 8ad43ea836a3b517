package book

import (
	"context"
	"time"

	"bookinventory/internal/platform/googlebooks"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Repository defines the contract for book data storage.
type Repository interface {
	// Create stores b and sets b.ID to the generated identifier.
	Create(ctx context.Context, b *Book) error
	// GetByID returns ErrNotFound when no record has the id.
	GetByID(ctx context.Context, id string) (Book, error)
	// List returns one page of books in insertion order plus the total count.
	List(ctx context.Context, limit, offset int) ([]Book, int, error)
	// Replace overwrites every field of the record; ErrNotFound if absent.
	Replace(ctx context.Context, id string, b *Book) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	FindByISBN(ctx context.Context, isbn string) ([]Book, error)
	// FindByPurchaseDateBetween is inclusive on both bounds.
	FindByPurchaseDateBetween(ctx context.Context, start, end time.Time) ([]Book, error)
	// CountBySold counts books whose sold date is set (sold=true) or null.
	CountBySold(ctx context.Context, sold bool) (int64, error)
	// ListFinancials scans only the cogs and profit columns.
	ListFinancials(ctx context.Context) ([]Financials, error)
}

// MetadataLookup fetches catalog metadata for an ISBN.
type MetadataLookup interface {
	LookupByISBN(ctx context.Context, isbn string) (googlebooks.Volume, error)
}
