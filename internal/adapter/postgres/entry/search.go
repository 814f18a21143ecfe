package entry

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// builder is the statement builder for dynamically-shaped search queries
// (variable keyword counts, variable id-set filters).
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// cleanedContent strips HTML tags and character entities from the content
// column so keyword matching sees the text the user actually wrote.
const cleanedContent = `regexp_replace(regexp_replace(content, '<[^>]*>', '', 'g'), '&[#a-zA-Z0-9]+;', '', 'g')`

func collectEntries(rows pgx.Rows) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SearchByKeywords returns the user's entries where ANY keyword appears as a
// case-insensitive substring in the title or in the tag/entity-stripped
// content. Ordered by ascending id. Not hydrated.
func (r *Repo) SearchByKeywords(ctx context.Context, ownerLogin string, keywords []string) ([]domain.Entry, error) {
	match := sq.Or{}
	for _, kw := range keywords {
		pattern := "%" + kw + "%"
		match = append(match,
			sq.ILike{"title": pattern},
			sq.Expr(cleanedContent+" ILIKE ?", pattern),
		)
	}

	query := builder.
		Select(entryColumns).
		From("entries").
		Where(sq.Eq{"owner_login": ownerLogin}).
		Where(match).
		OrderBy("id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build keyword search: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search by keywords: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// SearchByCatalogIDs returns the user's entries linked to ANY of the given
// tag, emotion or activity ids (union across the three facets), de-duplicated
// by entry id and ordered by ascending id. Not hydrated.
func (r *Repo) SearchByCatalogIDs(ctx context.Context, ownerLogin string, tagIDs, emotionIDs, activityIDs []int64) ([]domain.Entry, error) {
	query := builder.
		Select(
			"e.id", "e.owner_login", "e.title", "e.content",
			"e.mood_id", "e.folder_id", "e.entry_date", "e.entry_time",
		).
		Options("DISTINCT").
		From("entries e")

	match := sq.Or{}
	if len(tagIDs) > 0 {
		query = query.LeftJoin("entry_tags et ON et.entry_id = e.id")
		match = append(match, sq.Expr("et.tag_id = ANY(?)", tagIDs))
	}
	if len(emotionIDs) > 0 {
		query = query.LeftJoin("entry_emotions ee ON ee.entry_id = e.id")
		match = append(match, sq.Expr("ee.emotion_id = ANY(?)", emotionIDs))
	}
	if len(activityIDs) > 0 {
		query = query.LeftJoin("entry_activities ea ON ea.entry_id = e.id")
		match = append(match, sq.Expr("ea.activity_id = ANY(?)", activityIDs))
	}

	query = query.
		Where(sq.Eq{"e.owner_login": ownerLogin}).
		Where(match).
		OrderBy("e.id ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build catalog search: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search by catalog ids: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// SearchByDate returns the user's entries dated exactly on the given day,
// ordered by ascending id. Not hydrated.
func (r *Repo) SearchByDate(ctx context.Context, ownerLogin string, date time.Time) ([]domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM entries
		 WHERE owner_login = $1 AND entry_date = $2
		 ORDER BY id ASC`,
		ownerLogin, date,
	)
	if err != nil {
		return nil, fmt.Errorf("search by date: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// MoodsByDate returns the mood samples recorded on the given day, ordered by
// ascending entry id (creation order).
func (r *Repo) MoodsByDate(ctx context.Context, ownerLogin string, date time.Time) ([]domain.MoodSample, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, mood_id, entry_date
		 FROM entries
		 WHERE owner_login = $1 AND entry_date = $2
		 ORDER BY id ASC`,
		ownerLogin, date,
	)
	if err != nil {
		return nil, fmt.Errorf("moods by date: %w", err)
	}
	defer rows.Close()

	return collectMoods(rows)
}

// MoodsByMonth returns the mood samples for one calendar month
// ("YYYY-MM"), ordered by date then entry id.
func (r *Repo) MoodsByMonth(ctx context.Context, ownerLogin, yearMonth string) ([]domain.MoodSample, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, mood_id, entry_date
		 FROM entries
		 WHERE owner_login = $1 AND TO_CHAR(entry_date, 'YYYY-MM') = $2
		 ORDER BY entry_date ASC, id ASC`,
		ownerLogin, yearMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("moods by month: %w", err)
	}
	defer rows.Close()

	return collectMoods(rows)
}

func collectMoods(rows pgx.Rows) ([]domain.MoodSample, error) {
	samples := []domain.MoodSample{}
	for rows.Next() {
		var s domain.MoodSample
		if err := rows.Scan(&s.EntryID, &s.MoodID, &s.Date); err != nil {
			return nil, fmt.Errorf("scan mood sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
