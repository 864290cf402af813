package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"todo-api/internal/ids"
	"todo-api/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
    seq         bigserial,
    id          text PRIMARY KEY,
    title       text NOT NULL,
    "timestamp" timestamptz NOT NULL,
    color       text NOT NULL,
    completed   boolean NOT NULL,
    priority    text NOT NULL,
    created_at  timestamptz NOT NULL DEFAULT now(),
    updated_at  timestamptz NOT NULL DEFAULT now()
);
ALTER TABLE todos ADD COLUMN IF NOT EXISTS seq bigserial;
`

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

// EnsureSchema creates the todos table if it does not exist yet.
func (r *TodoRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	const q = `
INSERT INTO todos (id, title, "timestamp", color, completed, priority)
VALUES ($1, $2, $3, $4, $5, $6);
`
	t.ID = ids.NewID()
	if _, err := r.db.ExecContext(ctx, q, t.ID, t.Title, t.Timestamp.UTC(), t.Color, t.Completed, t.Priority); err != nil {
		return model.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return t, nil
}

func (r *TodoRepo) List(ctx context.Context) ([]model.Todo, error) {
	const q = `
SELECT id, title, "timestamp", color, completed, priority
FROM todos
ORDER BY seq;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	out := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Timestamp, &t.Color, &t.Completed, &t.Priority); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.Timestamp = t.Timestamp.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return out, nil
}

func (r *TodoRepo) Update(ctx context.Context, id string, t model.Todo) (model.Todo, error) {
	const q = `
UPDATE todos
SET title = $2,
    "timestamp" = $3,
    color = $4,
    completed = $5,
    priority = $6,
    updated_at = now()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, t.Title, t.Timestamp.UTC(), t.Color, t.Completed, t.Priority)
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if ra == 0 {
		return model.Todo{}, model.ErrNotFound
	}
	t.ID = id
	return t, nil
}

func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if ra == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TodoRepo) PingContext(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}
