package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// CreateCatalogItem adds a tag, activity or emotion to the user's catalog and
// returns it with its assigned id. Labels are unique per user and kind.
func (s *Service) CreateCatalogItem(ctx context.Context, ownerLogin string, kind domain.CatalogKind, label string, iconID int) (*domain.CatalogItem, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "must be tag, activity or emotion")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, domain.NewValidationError("label", "must not be empty")
	}

	item, err := s.catalogs.Insert(ctx, &domain.CatalogItem{
		OwnerLogin: ownerLogin,
		Kind:       kind,
		Label:      label,
		IconID:     iconID,
	})
	if err != nil {
		return nil, fmt.Errorf("journal.CreateCatalogItem: %w", err)
	}
	return item, nil
}

// CatalogItems lists the user's catalog items of one kind.
func (s *Service) CatalogItems(ctx context.Context, ownerLogin string, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "must be tag, activity or emotion")
	}

	items, err := s.catalogs.ListByOwner(ctx, ownerLogin, kind)
	if err != nil {
		return nil, fmt.Errorf("journal.CatalogItems: %w", err)
	}
	return items, nil
}

// DeleteCatalogItem removes a catalog item. Existing entries keep their link
// rows; hydration simply stops resolving the deleted item.
func (s *Service) DeleteCatalogItem(ctx context.Context, ownerLogin string, kind domain.CatalogKind, id int64) error {
	if !kind.Valid() {
		return domain.NewValidationError("kind", "must be tag, activity or emotion")
	}

	if err := s.catalogs.Delete(ctx, ownerLogin, kind, id); err != nil {
		return fmt.Errorf("journal.DeleteCatalogItem: %w", err)
	}
	return nil
}
