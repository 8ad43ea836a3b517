package todo

import (
	"context"
	"fmt"
	"time"

	"bookinventory/internal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *PostgresRepo) List(ctx context.Context) ([]Todo, error) {
	const sql = `
		SELECT id, title, description, due_date, completed
		FROM todos
		ORDER BY created_at ASC, id ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	out := []Todo{}
	for rows.Next() {
		var (
			t   Todo
			due *time.Time
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.DueDate = entity.DateFromTime(due)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Create(ctx context.Context, t *Todo) error {
	t.ID = uuid.NewString()
	if err := r.Save(ctx, t); err != nil {
		t.ID = ""
		return err
	}
	return nil
}

func (r *PostgresRepo) Save(ctx context.Context, t *Todo) error {
	const sql = `
		INSERT INTO todos (id, title, description, due_date, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			due_date = EXCLUDED.due_date,
			completed = EXCLUDED.completed`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, sql, t.ID, t.Title, t.Description, t.DueDate.TimePtr(), t.Completed); err != nil {
		return fmt.Errorf("save todo %s: %w", t.ID, err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	return nil
}
