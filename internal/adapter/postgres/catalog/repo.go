// Package catalog implements the repository for user-defined tags,
// activities and emotions. All three kinds live in one table discriminated
// by the kind column; uniqueness is (owner_login, kind, label).
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// Repo provides catalog item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert creates a catalog item and returns it with the generated id.
// Returns domain.ErrAlreadyExists when the owner already has an item of the
// same kind with the same label.
func (r *Repo) Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	if !item.Kind.Valid() {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("unknown catalog kind %q", item.Kind))
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	created := *item
	err := q.QueryRow(ctx,
		`INSERT INTO catalog_items (owner_login, kind, label, icon_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		item.OwnerLogin, string(item.Kind), item.Label, item.IconID,
	).Scan(&created.ID)
	if err != nil {
		return nil, postgres.MapError(err, string(item.Kind), item.Label)
	}
	return &created, nil
}

// ListByOwner returns all items of one kind for a user, ordered by id.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByOwner(ctx context.Context, ownerLogin string, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, owner_login, kind, label, icon_id
		 FROM catalog_items
		 WHERE owner_login = $1 AND kind = $2
		 ORDER BY id ASC`,
		ownerLogin, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", kind, err)
	}
	defer rows.Close()

	items := []domain.CatalogItem{}
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.OwnerLogin, &it.Kind, &it.Label, &it.IconID); err != nil {
			return nil, fmt.Errorf("scan %s item: %w", kind, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete removes a catalog item unconditionally. Association rows that still
// reference the id are left behind; hydration joins the catalog table, so
// orphaned links simply stop appearing on entries.
// Returns domain.ErrNotFound when the item does not exist, is of a different
// kind, or belongs to another user.
func (r *Repo) Delete(ctx context.Context, ownerLogin string, kind domain.CatalogKind, id int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM catalog_items WHERE id = $1 AND owner_login = $2 AND kind = $3`,
		id, ownerLogin, string(kind),
	)
	if err != nil {
		return postgres.MapError(err, string(kind), id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
