// Package entry implements the journal entry repository using PostgreSQL.
// It manages the entries table plus the three association tables linking
// entries to catalog items (entry_tags, entry_activities, entry_emotions).
//
// Transaction boundaries live in the journal service: every method reads its
// querier from the context, so multi-step operations compose inside one
// TxManager.RunInTx call.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// Repo provides journal entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const entryColumns = "id, owner_login, title, content, mood_id, folder_id, entry_date, entry_time"

// linkTables maps a catalog kind to its association table. Table and column
// names are compile-time constants; nothing user-supplied is ever spliced
// into SQL text.
var linkTables = map[domain.CatalogKind]struct {
	table  string
	column string
}{
	domain.KindTag:      {table: "entry_tags", column: "tag_id"},
	domain.KindActivity: {table: "entry_activities", column: "activity_id"},
	domain.KindEmotion:  {table: "entry_emotions", column: "emotion_id"},
}

// ---------------------------------------------------------------------------
// Clock conversion: domain keeps "15:04:05" strings, the column is TIME.
// ---------------------------------------------------------------------------

func clockToPg(s string) (pgtype.Time, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return pgtype.Time{}, domain.NewValidationError("time", fmt.Sprintf("not a HH:MM:SS clock value: %q", s))
	}
	us := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond) +
		int64(t.Second())*int64(time.Second/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}, nil
}

func clockFromPg(t pgtype.Time) string {
	us := t.Microseconds
	h := us / int64(time.Hour/time.Microsecond)
	us -= h * int64(time.Hour/time.Microsecond)
	m := us / int64(time.Minute/time.Microsecond)
	us -= m * int64(time.Minute/time.Microsecond)
	s := us / int64(time.Second/time.Microsecond)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// scanTarget is satisfied by both pgx.Row and pgx.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanEntry(row scanTarget) (domain.Entry, error) {
	var (
		e     domain.Entry
		clock pgtype.Time
	)
	err := row.Scan(&e.ID, &e.OwnerLogin, &e.Title, &e.Content, &e.MoodID, &e.FolderID, &e.Date, &clock)
	if err != nil {
		return domain.Entry{}, err
	}
	e.Time = clockFromPg(clock)
	return e, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert creates the entry row and returns its generated id.
// Association rows and the folder counter are separate steps owned by the
// journal service.
func (r *Repo) Insert(ctx context.Context, e *domain.Entry) (int64, error) {
	clock, err := clockToPg(e.Time)
	if err != nil {
		return 0, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err = q.QueryRow(ctx,
		`INSERT INTO entries (owner_login, title, content, mood_id, folder_id, entry_date, entry_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		e.OwnerLogin, e.Title, e.Content, e.MoodID, e.FolderID, e.Date, clock,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "entry", e.Title)
	}
	return id, nil
}

// UpdateScalars overwrites the entry's scalar fields, filtered by id and
// owner. Returns domain.ErrNotFound when the entry does not exist or belongs
// to another user.
func (r *Repo) UpdateScalars(ctx context.Context, ownerLogin string, e *domain.Entry) error {
	clock, err := clockToPg(e.Time)
	if err != nil {
		return err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE entries
		 SET title = $1, content = $2, mood_id = $3, folder_id = $4, entry_date = $5, entry_time = $6
		 WHERE id = $7 AND owner_login = $8`,
		e.Title, e.Content, e.MoodID, e.FolderID, e.Date, clock, e.ID, ownerLogin,
	)
	if err != nil {
		return postgres.MapError(err, "entry", e.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the entry row, filtered by id and owner.
// Returns domain.ErrNotFound when nothing was deleted.
func (r *Repo) Delete(ctx context.Context, ownerLogin string, entryID int64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM entries WHERE id = $1 AND owner_login = $2`,
		entryID, ownerLogin,
	)
	if err != nil {
		return postgres.MapError(err, "entry", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

// FolderOf returns the folder the entry currently lives in, filtered by owner.
// Returns domain.ErrNotFound when the entry does not exist or belongs to
// another user.
func (r *Repo) FolderOf(ctx context.Context, ownerLogin string, entryID int64) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var folderID int64
	err := q.QueryRow(ctx,
		`SELECT folder_id FROM entries WHERE id = $1 AND owner_login = $2`,
		entryID, ownerLogin,
	).Scan(&folderID)
	if err != nil {
		return 0, postgres.MapError(err, "entry", entryID)
	}
	return folderID, nil
}

// ---------------------------------------------------------------------------
// Association rows
// ---------------------------------------------------------------------------

// InsertLinks adds one association row per catalog item id. Non-positive ids
// are skipped as invalid rather than failing the whole operation; duplicates
// are absorbed by ON CONFLICT DO NOTHING, so re-linking the same set is
// idempotent.
func (r *Repo) InsertLinks(ctx context.Context, entryID int64, kind domain.CatalogKind, itemIDs []int64) error {
	lt, ok := linkTables[kind]
	if !ok {
		return domain.NewValidationError("kind", fmt.Sprintf("unknown catalog kind %q", kind))
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	sql := fmt.Sprintf(
		`INSERT INTO %s (entry_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		lt.table, lt.column,
	)

	for _, itemID := range itemIDs {
		if itemID <= 0 {
			continue
		}
		if _, err := q.Exec(ctx, sql, entryID, itemID); err != nil {
			return postgres.MapError(err, lt.table, itemID)
		}
	}
	return nil
}

// ClearLinks removes all association rows of one kind for the entry.
func (r *Repo) ClearLinks(ctx context.Context, entryID int64, kind domain.CatalogKind) error {
	lt, ok := linkTables[kind]
	if !ok {
		return domain.NewValidationError("kind", fmt.Sprintf("unknown catalog kind %q", kind))
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	sql := fmt.Sprintf(`DELETE FROM %s WHERE entry_id = $1`, lt.table)

	if _, err := q.Exec(ctx, sql, entryID); err != nil {
		return postgres.MapError(err, lt.table, entryID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByFolderMonth returns the user's entries in one folder whose date falls
// in the given year/month, ordered by ascending id (stable creation order).
// Entries are NOT hydrated; callers combine this with Hydrate.
func (r *Repo) ListByFolderMonth(ctx context.Context, ownerLogin string, folderID int64, year, month int) ([]domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE owner_login = $1
		   AND folder_id = $2
		   AND EXTRACT(YEAR FROM entry_date) = $3
		   AND EXTRACT(MONTH FROM entry_date) = $4
		 ORDER BY id ASC`,
		ownerLogin, folderID, year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// Hydrate loads the tag/activity/emotion sets for every entry in the slice,
// in place. Labels and icons come live from the catalog table: association
// rows whose catalog item has been deleted are silently dropped, and a
// renamed item shows its current label.
func (r *Repo) Hydrate(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]int64, len(entries))
	index := make(map[int64]*domain.Entry, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
		index[entries[i].ID] = &entries[i]
		entries[i].Tags = []domain.CatalogItem{}
		entries[i].Activities = []domain.CatalogItem{}
		entries[i].Emotions = []domain.CatalogItem{}
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	for kind, lt := range linkTables {
		sql := fmt.Sprintf(
			`SELECT l.entry_id, c.id, c.owner_login, c.kind, c.label, c.icon_id
			 FROM %s l
			 JOIN catalog_items c ON c.id = l.%s
			 WHERE l.entry_id = ANY($1)
			 ORDER BY l.entry_id, c.id`,
			lt.table, lt.column,
		)

		rows, err := q.Query(ctx, sql, ids)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", lt.table, err)
		}

		for rows.Next() {
			var (
				entryID int64
				item    domain.CatalogItem
			)
			if err := rows.Scan(&entryID, &item.ID, &item.OwnerLogin, &item.Kind, &item.Label, &item.IconID); err != nil {
				rows.Close()
				return fmt.Errorf("hydrate %s: scan: %w", lt.table, err)
			}
			e := index[entryID]
			if e == nil {
				continue
			}
			switch kind {
			case domain.KindTag:
				e.Tags = append(e.Tags, item)
			case domain.KindActivity:
				e.Activities = append(e.Activities, item)
			case domain.KindEmotion:
				e.Emotions = append(e.Emotions, item)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("hydrate %s: %w", lt.table, err)
		}
		rows.Close()
	}

	return nil
}
