package journal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookapp/daybook-server/internal/domain"
)

func TestService_SearchByKeywords_TrimsAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	var got []string
	entries := &fakeEntries{
		searchKwFn: func(_ context.Context, _ string, keywords []string) ([]domain.Entry, error) {
			got = keywords
			return []domain.Entry{}, nil
		},
	}
	svc := newTestService(entries, &fakeFolders{}, &fakeTx{})

	_, err := svc.SearchByKeywords(context.Background(), "ann", []string{" walk ", "", "  ", "rain"})
	require.NoError(t, err)
	assert.Equal(t, []string{"walk", "rain"}, got)

	_, err = svc.SearchByKeywords(context.Background(), "ann", []string{"", "   "})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_SearchByCategories_RejectsAllEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeEntries{}, &fakeFolders{}, &fakeTx{})

	_, err := svc.SearchByCategories(context.Background(), "ann", nil, nil, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_SearchByDate_ParsesISO(t *testing.T) {
	t.Parallel()

	var got time.Time
	entries := &fakeEntries{
		searchDateFn: func(_ context.Context, _ string, date time.Time) ([]domain.Entry, error) {
			got = date
			return []domain.Entry{}, nil
		},
	}
	svc := newTestService(entries, &fakeFolders{}, &fakeTx{})

	_, err := svc.SearchByDate(context.Background(), "ann", "2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 15, got.Day())

	_, err = svc.SearchByDate(context.Background(), "ann", "15/06/2026")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_SearchResults_CarryPreviews(t *testing.T) {
	t.Parallel()

	entries := &fakeEntries{
		searchKwFn: func(_ context.Context, _ string, _ []string) ([]domain.Entry, error) {
			return []domain.Entry{{ID: 1, Content: "<p>Hello &amp; <b>world</b></p>"}}, nil
		},
	}
	svc := newTestService(entries, &fakeFolders{}, &fakeTx{})

	results, err := svc.SearchByKeywords(context.Background(), "ann", []string{"hello"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Hello & world", results[0].Preview)
	assert.True(t, entries.hydrated, "search results must be hydrated")
}

func TestService_MoodsByDate_ReturnsIDsInOrder(t *testing.T) {
	t.Parallel()

	entries := &fakeEntries{
		moodsByDateFn: func(_ context.Context, _ string, _ time.Time) ([]domain.MoodSample, error) {
			return []domain.MoodSample{
				{EntryID: 1, MoodID: 3},
				{EntryID: 2, MoodID: 5},
			}, nil
		},
	}
	svc := newTestService(entries, &fakeFolders{}, &fakeTx{})

	moods, err := svc.MoodsByDate(context.Background(), "ann", "2026-06-15")

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, moods)
}

func TestService_MoodsByMonth_ValidatesFormat(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeEntries{}, &fakeFolders{}, &fakeTx{})

	_, err := svc.MoodsByMonth(context.Background(), "ann", "June 2026")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "strips markup and entities",
			content: "<p>Hello &amp; world</p>",
			want:    "Hello & world",
		},
		{
			name:    "collapses whitespace",
			content: "<div>one\n\n  two\tthree</div>",
			want:    "one two three",
		},
		{
			name:    "plain text unchanged",
			content: "already plain",
			want:    "already plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Preview(tt.content))
		})
	}
}

func TestPreview_CapsLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 100)
	got := Preview(long)

	assert.LessOrEqual(t, len([]rune(got)), previewRunes+1, "preview must be capped plus ellipsis")
	assert.True(t, strings.HasSuffix(got, "…"))
}
