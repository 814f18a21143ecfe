// Package auth implements account operations: the registration bootstrap and
// the session-less credential flows (login check, password/email change,
// account deletion).
package auth

import (
	"context"
	"log/slog"

	"github.com/daybookapp/daybook-server/internal/config"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	Insert(ctx context.Context, u *domain.User) error
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	Exists(ctx context.Context, login string) (bool, error)
	UpdatePassword(ctx context.Context, login, passwordHash string) error
	UpdateEmail(ctx context.Context, login, email string) error
	Delete(ctx context.Context, login string) error
}

// folderRepo defines the folder repository interface needed by the bootstrap.
type folderRepo interface {
	Insert(ctx context.Context, ownerLogin, name string) (int64, error)
	IncrementCount(ctx context.Context, id int64) error
}

// entryRepo defines the entry repository interface needed by the bootstrap.
type entryRepo interface {
	Insert(ctx context.Context, e *domain.Entry) (int64, error)
}

// todoRepo defines the todo repository interface needed by the bootstrap.
type todoRepo interface {
	Insert(ctx context.Context, ownerLogin, name string) (int64, error)
}

// catalogRepo defines the catalog repository interface needed by the bootstrap.
type catalogRepo interface {
	Insert(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
}

// txManager defines the transaction boundary needed by the auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements account operations.
type Service struct {
	log     *slog.Logger
	users   userRepo
	folders folderRepo
	entries entryRepo
	todos   todoRepo
	catalog catalogRepo
	tx      txManager
	cfg     config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	folders folderRepo,
	entries entryRepo,
	todos todoRepo,
	catalog catalogRepo,
	tx txManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "auth"),
		users:   users,
		folders: folders,
		entries: entries,
		todos:   todos,
		catalog: catalog,
		tx:      tx,
		cfg:     cfg,
	}
}
