package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookinventory/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, isbn, cogs, date_purchased, sold_date, payout, profit, title`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanBook(row pgx.Row) (Book, error) {
	var (
		b         Book
		purchased *time.Time
		sold      *time.Time
	)
	if err := row.Scan(&b.ID, &b.ISBN, &b.Cogs, &purchased, &sold, &b.Payout, &b.Profit, &b.Title); err != nil {
		return Book{}, err
	}
	b.DatePurchased = entity.DateFromTime(purchased)
	b.Sold = entity.DateFromTime(sold)
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, isbn, cogs, date_purchased, sold_date, payout, profit, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	id := uuid.NewString()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		id, b.ISBN, b.Cogs, b.DatePurchased.TimePtr(), b.Sold.TimePtr(), b.Payout, b.Profit, b.Title,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	b.ID = id
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %s: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, limit, offset int) ([]Book, int, error) {
	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	dataSQL := `SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

func (r *PostgresRepo) Replace(ctx context.Context, id string, b *Book) error {
	const sql = `
		UPDATE books SET
			isbn = $2,
			cogs = $3,
			date_purchased = $4,
			sold_date = $5,
			payout = $6,
			profit = $7,
			title = $8,
			updated_at = NOW()
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql,
		id, b.ISBN, b.Cogs, b.DatePurchased.TimePtr(), b.Sold.TimePtr(), b.Payout, b.Profit, b.Title,
	)
	if err != nil {
		return fmt.Errorf("update book %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	b.ID = id
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	return nil
}

func (r *PostgresRepo) FindByISBN(ctx context.Context, isbn string) ([]Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 ORDER BY created_at ASC, id ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, isbn)
	if err != nil {
		return nil, fmt.Errorf("find books by isbn: %w", err)
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) FindByPurchaseDateBetween(ctx context.Context, start, end time.Time) ([]Book, error) {
	query := `SELECT ` + bookColumns + `
		FROM books
		WHERE date_purchased >= $1 AND date_purchased <= $2
		ORDER BY created_at ASC, id ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("find books by purchase date: %w", err)
	}
	return collectBooks(rows)
}

func (r *PostgresRepo) CountBySold(ctx context.Context, sold bool) (int64, error) {
	query := `SELECT COUNT(*) FROM books WHERE sold_date IS NULL`
	if sold {
		query = `SELECT COUNT(*) FROM books WHERE sold_date IS NOT NULL`
	}

	var count int64
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *PostgresRepo) ListFinancials(ctx context.Context) ([]Financials, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `SELECT cogs, profit FROM books`)
	if err != nil {
		return nil, fmt.Errorf("scan book financials: %w", err)
	}
	defer rows.Close()

	var out []Financials
	for rows.Next() {
		var f Financials
		if err := rows.Scan(&f.Cogs, &f.Profit); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
