// Package user implements the account repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert creates a user row. Returns domain.ErrAlreadyExists when the login
// is taken.
func (r *Repo) Insert(ctx context.Context, u *domain.User) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO users (login, email, password_hash) VALUES ($1, $2, $3)`,
		u.Login, u.Email, u.PasswordHash,
	)
	if err != nil {
		return postgres.MapError(err, "user", u.Login)
	}
	return nil
}

// GetByLogin returns the user with the given login.
// Returns domain.ErrNotFound when no such user exists.
func (r *Repo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := q.QueryRow(ctx,
		`SELECT login, email, password_hash FROM users WHERE login = $1`,
		login,
	).Scan(&u.Login, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, postgres.MapError(err, "user", login)
	}
	return &u, nil
}

// Exists reports whether a user with the given login is registered.
func (r *Repo) Exists(ctx context.Context, login string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`,
		login,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user %s: %w", login, err)
	}
	return exists, nil
}

// UpdatePassword replaces the stored password hash.
// Returns domain.ErrNotFound when the login is unknown.
func (r *Repo) UpdatePassword(ctx context.Context, login, passwordHash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE login = $2`,
		passwordHash, login,
	)
	if err != nil {
		return postgres.MapError(err, "user", login)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", login, domain.ErrNotFound)
	}
	return nil
}

// UpdateEmail replaces the stored email address.
// Returns domain.ErrNotFound when the login is unknown.
func (r *Repo) UpdateEmail(ctx context.Context, login, email string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE users SET email = $1 WHERE login = $2`,
		email, login,
	)
	if err != nil {
		return postgres.MapError(err, "user", login)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", login, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the user row. Folders, entries, catalog items and todos
// owned by the login are removed by ON DELETE CASCADE.
// Returns domain.ErrNotFound when the login is unknown.
func (r *Repo) Delete(ctx context.Context, login string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE login = $1`, login)
	if err != nil {
		return postgres.MapError(err, "user", login)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", login, domain.ErrNotFound)
	}
	return nil
}
