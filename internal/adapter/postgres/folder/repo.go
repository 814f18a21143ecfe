// Package folder implements the folder repository using PostgreSQL.
//
// Folders carry a denormalized item_count that the journal service keeps in
// step with entry membership via IncrementCount / DecrementCount. The repo
// never recomputes the counter from the entries table.
package folder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// txManager is the transaction boundary needed by Delete.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides folder persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  txManager
}

// New creates a new folder repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// Insert creates a folder and returns its generated id.
// Returns domain.ErrAlreadyExists when the owner already has a folder with
// that name, domain.ErrNotFound when the owner login is unknown.
func (r *Repo) Insert(ctx context.Context, ownerLogin, name string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO folders (owner_login, name) VALUES ($1, $2) RETURNING id`,
		ownerLogin, name,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "folder", name)
	}
	return id, nil
}

// GetOwned returns the folder with the given id if it belongs to ownerLogin.
// Returns domain.ErrNotFound otherwise.
func (r *Repo) GetOwned(ctx context.Context, ownerLogin string, id int64) (*domain.Folder, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var f domain.Folder
	err := q.QueryRow(ctx,
		`SELECT id, owner_login, name, item_count FROM folders WHERE id = $1 AND owner_login = $2`,
		id, ownerLogin,
	).Scan(&f.ID, &f.OwnerLogin, &f.Name, &f.ItemCount)
	if err != nil {
		return nil, postgres.MapError(err, "folder", id)
	}
	return &f, nil
}

// ListByOwner returns all folders of a user ordered by id (creation order).
// Returns an empty slice (not nil) when the user has no folders.
func (r *Repo) ListByOwner(ctx context.Context, ownerLogin string) ([]domain.Folder, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, owner_login, name, item_count FROM folders WHERE owner_login = $1 ORDER BY id ASC`,
		ownerLogin,
	)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []domain.Folder{}
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.OwnerLogin, &f.Name, &f.ItemCount); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Rename changes the folder's display name.
// Returns domain.ErrNotFound when the folder does not exist or belongs to
// another user, domain.ErrAlreadyExists on a name collision.
func (r *Repo) Rename(ctx context.Context, ownerLogin string, id int64, name string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE folders SET name = $1 WHERE id = $2 AND owner_login = $3`,
		name, id, ownerLogin,
	)
	if err != nil {
		return postgres.MapError(err, "folder", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a folder. The last folder of a user cannot be deleted:
// every account must keep at least one destination folder for entries.
// The guard and the delete run in one transaction; the user's folder rows
// are locked so a concurrent delete cannot slip below the minimum.
// Returns domain.ErrConflict when the folder is the user's only one,
// domain.ErrNotFound when it does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, ownerLogin string, id int64) error {
	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.pool)

		rows, err := q.Query(txCtx,
			`SELECT id FROM folders WHERE owner_login = $1 FOR UPDATE`,
			ownerLogin,
		)
		if err != nil {
			return fmt.Errorf("lock folders: %w", err)
		}
		var ids []int64
		for rows.Next() {
			var fid int64
			if err := rows.Scan(&fid); err != nil {
				rows.Close()
				return fmt.Errorf("scan folder id: %w", err)
			}
			ids = append(ids, fid)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("lock folders: %w", err)
		}

		owned := false
		for _, fid := range ids {
			if fid == id {
				owned = true
				break
			}
		}
		if !owned {
			return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		if len(ids) <= 1 {
			return fmt.Errorf("folder %d is the only folder of %s: %w", id, ownerLogin, domain.ErrConflict)
		}

		if _, err := q.Exec(txCtx,
			`DELETE FROM folders WHERE id = $1 AND owner_login = $2`,
			id, ownerLogin,
		); err != nil {
			return postgres.MapError(err, "folder", id)
		}
		return nil
	})
}

// IncrementCount bumps the folder's denormalized entry counter by one.
func (r *Repo) IncrementCount(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE folders SET item_count = item_count + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return postgres.MapError(err, "folder", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DecrementCount lowers the folder's entry counter by one, floored at zero.
// The floor defends against double decrements; it never masks a missing
// folder, which still reports domain.ErrNotFound.
func (r *Repo) DecrementCount(ctx context.Context, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE folders SET item_count = GREATEST(item_count - 1, 0) WHERE id = $1`,
		id,
	)
	if err != nil {
		return postgres.MapError(err, "folder", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
