package book

import (
	"errors"
	"fmt"
	"strings"

	"bookinventory/internal/entity"
	"bookinventory/internal/validation"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrValidation is the sentinel behind every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists the fields that made a request unacceptable.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Book represents one copy held in (or sold from) inventory. A nil Sold
// date means the copy is still in active inventory.
type Book struct {
	ID            string              `json:"id"`
	ISBN          string              `json:"isbn"`
	Cogs          decimal.NullDecimal `json:"cogs"`
	DatePurchased *entity.Date        `json:"datePurchased"`
	Sold          *entity.Date        `json:"sold"`
	Payout        decimal.NullDecimal `json:"payout"`
	Profit        decimal.NullDecimal `json:"profit"`
	Title         *string             `json:"title"`
}

// Active reports whether the book is still unsold.
func (b Book) Active() bool {
	return b.Sold == nil
}

// Financials is the {cogs, profit} projection used by the overview.
type Financials struct {
	Cogs   decimal.NullDecimal
	Profit decimal.NullDecimal
}

// Page is one slice of the inventory listing.
type Page struct {
	Content       []Book `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
}

// FinancialOverview holds null-excluding sums across all books.
type FinancialOverview struct {
	Cogs   decimal.Decimal `json:"cogs"`
	Profit decimal.Decimal `json:"profit"`
}

type InventoryStatus struct {
	Sold   int64 `json:"sold"`
	Unsold int64 `json:"unsold"`
}
