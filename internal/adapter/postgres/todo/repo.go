// Package todo implements the todo-list repository using PostgreSQL.
package todo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// Repo provides todo persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new todo repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert creates a todo and returns its generated id.
// Returns domain.ErrAlreadyExists when the owner already has a todo with the
// same name.
func (r *Repo) Insert(ctx context.Context, ownerLogin, name string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO todos (owner_login, name) VALUES ($1, $2) RETURNING id`,
		ownerLogin, name,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "todo", name)
	}
	return id, nil
}

// ListByOwner returns the user's todos ordered by id (creation order).
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByOwner(ctx context.Context, ownerLogin string) ([]domain.Todo, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, owner_login, name FROM todos WHERE owner_login = $1 ORDER BY id ASC`,
		ownerLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var td domain.Todo
		if err := rows.Scan(&td.ID, &td.OwnerLogin, &td.Name); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, td)
	}
	return todos, rows.Err()
}

// Delete removes a todo by name.
// Returns domain.ErrNotFound when the owner has no todo with that name.
func (r *Repo) Delete(ctx context.Context, ownerLogin, name string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM todos WHERE owner_login = $1 AND name = $2`,
		ownerLogin, name,
	)
	if err != nil {
		return postgres.MapError(err, "todo", name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo %q: %w", name, domain.ErrNotFound)
	}
	return nil
}
