package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/k3a/html2text"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// previewRunes caps the plain-text preview attached to search results.
const previewRunes = 160

// Result is one search hit: the hydrated entry plus a plain-text preview of
// its markup-bearing content.
type Result struct {
	domain.Entry
	Preview string
}

// SearchByKeywords returns entries where any keyword matches the title or the
// markup-stripped content (case-insensitive substring). Empty keyword lists
// are rejected.
func (s *Service) SearchByKeywords(ctx context.Context, ownerLogin string, keywords []string) ([]Result, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return nil, domain.NewValidationError("keywords", "at least one keyword is required")
	}

	entries, err := s.entries.SearchByKeywords(ctx, ownerLogin, cleaned)
	if err != nil {
		return nil, fmt.Errorf("journal.SearchByKeywords: %w", err)
	}
	return s.toResults(ctx, entries)
}

// SearchByCategories returns entries linked to any of the given tag, emotion
// or activity ids (union across the three facets), de-duplicated by entry id.
// At least one of the three lists must be non-empty.
func (s *Service) SearchByCategories(ctx context.Context, ownerLogin string, tagIDs, emotionIDs, activityIDs []int64) ([]Result, error) {
	if len(tagIDs) == 0 && len(emotionIDs) == 0 && len(activityIDs) == 0 {
		return nil, domain.NewValidationError("ids", "at least one tag, emotion or activity id is required")
	}

	entries, err := s.entries.SearchByCatalogIDs(ctx, ownerLogin, tagIDs, emotionIDs, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("journal.SearchByCategories: %w", err)
	}
	return s.toResults(ctx, entries)
}

// SearchByDate returns entries dated exactly on the given ISO day.
func (s *Service) SearchByDate(ctx context.Context, ownerLogin, isoDate string) ([]Result, error) {
	date, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be an ISO date (YYYY-MM-DD)")
	}

	entries, err := s.entries.SearchByDate(ctx, ownerLogin, date)
	if err != nil {
		return nil, fmt.Errorf("journal.SearchByDate: %w", err)
	}
	return s.toResults(ctx, entries)
}

// MoodsByDate returns the mood ids recorded on the given ISO day, ordered by
// entry creation (ascending entry id).
func (s *Service) MoodsByDate(ctx context.Context, ownerLogin, isoDate string) ([]int64, error) {
	date, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be an ISO date (YYYY-MM-DD)")
	}

	samples, err := s.entries.MoodsByDate(ctx, ownerLogin, date)
	if err != nil {
		return nil, fmt.Errorf("journal.MoodsByDate: %w", err)
	}

	moods := make([]int64, len(samples))
	for i, sample := range samples {
		moods[i] = sample.MoodID
	}
	return moods, nil
}

// MoodsByMonth returns the mood samples of one calendar month ("2006-01"),
// ordered by date, for the statistics views.
func (s *Service) MoodsByMonth(ctx context.Context, ownerLogin, yearMonth string) ([]domain.MoodSample, error) {
	if _, err := time.Parse("2006-01", yearMonth); err != nil {
		return nil, domain.NewValidationError("month", "must be a year-month (YYYY-MM)")
	}

	samples, err := s.entries.MoodsByMonth(ctx, ownerLogin, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("journal.MoodsByMonth: %w", err)
	}
	return samples, nil
}

// toResults hydrates the entries and attaches plain-text previews.
func (s *Service) toResults(ctx context.Context, entries []domain.Entry) ([]Result, error) {
	if err := s.entries.Hydrate(ctx, entries); err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}

	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = Result{Entry: e, Preview: Preview(e.Content)}
	}
	return results, nil
}

// Preview converts markup-bearing entry content to a short plain-text
// snippet: HTML tags and entities resolved, whitespace collapsed, capped at
// previewRunes runes.
func Preview(content string) string {
	text := strings.Join(strings.Fields(html2text.HTML2Text(content)), " ")
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:previewRunes])) + "…"
}
