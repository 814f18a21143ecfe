// Package journal implements the journal operations: entry CRUD with
// association and folder-counter maintenance, and the multi-criteria search.
package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// entryRepo defines the entry repository interface needed by the journal service.
type entryRepo interface {
	Insert(ctx context.Context, e *domain.Entry) (int64, error)
	UpdateScalars(ctx context.Context, ownerLogin string, e *domain.Entry) error
	Delete(ctx context.Context, ownerLogin string, entryID int64) error
	FolderOf(ctx context.Context, ownerLogin string, entryID int64) (int64, error)
	InsertLinks(ctx context.Context, entryID int64, kind domain.CatalogKind, itemIDs []int64) error
	ClearLinks(ctx context.Context, entryID int64, kind domain.CatalogKind) error
	ListByFolderMonth(ctx context.Context, ownerLogin string, folderID int64, year, month int) ([]domain.Entry, error)
	Hydrate(ctx context.Context, entries []domain.Entry) error
	SearchByKeywords(ctx context.Context, ownerLogin string, keywords []string) ([]domain.Entry, error)
	SearchByCatalogIDs(ctx context.Context, ownerLogin string, tagIDs, emotionIDs, activityIDs []int64) ([]domain.Entry, error)
	SearchByDate(ctx context.Context, ownerLogin string, date time.Time) ([]domain.Entry, error)
	MoodsByDate(ctx context.Context, ownerLogin string, date time.Time) ([]domain.MoodSample, error)
	MoodsByMonth(ctx context.Context, ownerLogin, yearMonth string) ([]domain.MoodSample, error)
}

// folderRepo defines the folder repository interface needed by the journal service.
type folderRepo interface {
	Insert(ctx context.Context, ownerLogin, name string) (int64, error)
	GetOwned(ctx context.Context, ownerLogin string, id int64) (*domain.Folder, error)
	ListByOwner(ctx context.Context, ownerLogin string) ([]domain.Folder, error)
	Rename(ctx context.Context, ownerLogin string, id int64, name string) error
	Delete(ctx context.Context, ownerLogin string, id int64) error
	IncrementCount(ctx context.Context, id int64) error
	DecrementCount(ctx context.Context, id int64) error
}

// catalogRepo defines the catalog repository interface needed by the journal service.
type catalogRepo interface {
	Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	ListByOwner(ctx context.Context, ownerLogin string, kind domain.CatalogKind) ([]domain.CatalogItem, error)
	Delete(ctx context.Context, ownerLogin string, kind domain.CatalogKind, id int64) error
}

// todoRepo defines the todo repository interface needed by the journal service.
type todoRepo interface {
	Insert(ctx context.Context, ownerLogin, name string) (int64, error)
	ListByOwner(ctx context.Context, ownerLogin string) ([]domain.Todo, error)
	Delete(ctx context.Context, ownerLogin, name string) error
}

// txManager defines the transaction boundary needed by the journal service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements journal operations.
type Service struct {
	log      *slog.Logger
	entries  entryRepo
	folders  folderRepo
	catalogs catalogRepo
	todos    todoRepo
	tx       txManager
}

// NewService creates a new journal service instance.
func NewService(logger *slog.Logger, entries entryRepo, folders folderRepo, catalogs catalogRepo, todos todoRepo, tx txManager) *Service {
	return &Service{
		log:      logger.With("service", "journal"),
		entries:  entries,
		folders:  folders,
		catalogs: catalogs,
		todos:    todos,
		tx:       tx,
	}
}
