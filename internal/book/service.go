package book

import (
	"context"
	"errors"
	"math"
	"time"

	"bookinventory/internal/entity"
	"bookinventory/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
	log  *logrus.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// createRules is the create-time rule set: ISBN must be non-blank and cogs
// must be present. Nothing else is checked.
type createRules struct {
	ISBN string           `json:"isbn" validate:"notblank"`
	Cogs *decimal.Decimal `json:"cogs" validate:"required"`
}

// GetByID returns nil, nil when the book does not exist.
func (s *Service) GetByID(ctx context.Context, id string) (*Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Paginate returns the zero-based page of size limit. limit is not capped.
func (s *Service) Paginate(ctx context.Context, page, limit int) (Page, error) {
	if page < 0 || limit < 1 {
		return Page{}, &ValidationError{Fields: []validation.FieldError{
			{Field: "page", Message: "page must be >= 0 and limit must be >= 1"},
		}}
	}

	// An offset past MaxInt cannot address any row; only the total is needed.
	offset := page * limit
	if page > math.MaxInt/limit {
		offset = math.MaxInt
	}

	books, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return Page{}, err
	}
	if books == nil || offset == math.MaxInt {
		books = []Book{}
	}

	return Page{
		Content:       books,
		Page:          page,
		Size:          limit,
		TotalElements: total,
		TotalPages:    totalPages(total, limit),
	}, nil
}

func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// SearchByISBN returns every exact match; an empty slice is a valid result.
func (s *Service) SearchByISBN(ctx context.Context, isbn string) ([]Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// MonthRange returns the first and the last millisecond of a month in UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// SoldInMonth returns the books whose purchase date falls inside the month.
// The month is expected to be in [1,12]; callers validate it.
func (s *Service) SoldInMonth(ctx context.Context, year, month int) ([]Book, error) {
	start, end := MonthRange(year, time.Month(month))
	return s.repo.FindByPurchaseDateBetween(ctx, start, end)
}

// Create stores a new book after checking the mandatory fields.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	entry := s.log.WithField("isbn", b.ISBN)
	entry.Info("attempting to create book")

	rules := createRules{ISBN: b.ISBN}
	if b.Cogs.Valid {
		rules.Cogs = &b.Cogs.Decimal
	}
	if errs := validation.Struct(rules); errs != nil {
		verr := &ValidationError{Fields: errs}
		entry.WithError(verr).Error("rejected book create")
		return Book{}, verr
	}

	b.ID = ""
	b.DatePurchased = entity.OrNil(b.DatePurchased)
	b.Sold = entity.OrNil(b.Sold)
	if err := s.repo.Create(ctx, &b); err != nil {
		entry.WithError(err).Error("failed to save book")
		return Book{}, err
	}
	entry.WithField("id", b.ID).Info("book saved")
	return b, nil
}

// Update replaces every field of an existing book with the incoming values,
// nulling whatever the caller left out. Missing ids fail with ErrNotFound.
func (s *Service) Update(ctx context.Context, id string, in Book) (Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}

	existing.ISBN = in.ISBN
	existing.Cogs = in.Cogs
	existing.DatePurchased = entity.OrNil(in.DatePurchased)
	existing.Sold = entity.OrNil(in.Sold)
	existing.Payout = in.Payout
	existing.Profit = in.Profit
	existing.Title = in.Title

	entry := s.log.WithFields(logrus.Fields{"id": id, "isbn": existing.ISBN})
	if err := s.repo.Replace(ctx, id, &existing); err != nil {
		entry.WithError(err).Error("failed to save book")
		return Book{}, err
	}
	entry.Info("book updated")
	return existing, nil
}

// Delete removes the book without checking that it exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CountActiveInventory counts books with no sold date.
func (s *Service) CountActiveInventory(ctx context.Context) (int64, error) {
	return s.repo.CountBySold(ctx, false)
}

func (s *Service) CountSold(ctx context.Context) (int64, error) {
	return s.repo.CountBySold(ctx, true)
}

func (s *Service) CountUnsold(ctx context.Context) (int64, error) {
	return s.CountActiveInventory(ctx)
}

// InventoryStatus combines CountSold and CountUnsold.
func (s *Service) InventoryStatus(ctx context.Context) (InventoryStatus, error) {
	sold, err := s.CountSold(ctx)
	if err != nil {
		return InventoryStatus{}, err
	}
	unsold, err := s.CountUnsold(ctx)
	if err != nil {
		return InventoryStatus{}, err
	}
	return InventoryStatus{Sold: sold, Unsold: unsold}, nil
}

// FinancialOverview sums cogs and profit over all books, skipping nulls.
func (s *Service) FinancialOverview(ctx context.Context) (FinancialOverview, error) {
	rows, err := s.repo.ListFinancials(ctx)
	if err != nil {
		return FinancialOverview{}, err
	}

	out := FinancialOverview{Cogs: decimal.Zero, Profit: decimal.Zero}
	for _, r := range rows {
		if r.Cogs.Valid {
			out.Cogs = out.Cogs.Add(r.Cogs.Decimal)
		}
		if r.Profit.Valid {
			out.Profit = out.Profit.Add(r.Profit.Decimal)
		}
	}
	return out, nil
}
