package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// CreateFolder creates a named folder for the user and returns its id.
// Folder names are unique per user.
func (s *Service) CreateFolder(ctx context.Context, ownerLogin, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.NewValidationError("name", "must not be empty")
	}

	id, err := s.folders.Insert(ctx, ownerLogin, name)
	if err != nil {
		return 0, fmt.Errorf("journal.CreateFolder: %w", err)
	}

	s.log.InfoContext(ctx, "folder created", "owner", ownerLogin, "folder_id", id)
	return id, nil
}

// Folders lists the user's folders with their item counters.
func (s *Service) Folders(ctx context.Context, ownerLogin string) ([]domain.Folder, error) {
	folders, err := s.folders.ListByOwner(ctx, ownerLogin)
	if err != nil {
		return nil, fmt.Errorf("journal.Folders: %w", err)
	}
	return folders, nil
}

// RenameFolder changes a folder's name.
func (s *Service) RenameFolder(ctx context.Context, ownerLogin string, folderID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}

	if err := s.folders.Rename(ctx, ownerLogin, folderID, name); err != nil {
		return fmt.Errorf("journal.RenameFolder: %w", err)
	}
	return nil
}

// DeleteFolder removes a folder and, via the schema cascade, the entries
// inside it. The user's last remaining folder cannot be deleted.
func (s *Service) DeleteFolder(ctx context.Context, ownerLogin string, folderID int64) error {
	if err := s.folders.Delete(ctx, ownerLogin, folderID); err != nil {
		return fmt.Errorf("journal.DeleteFolder: %w", err)
	}

	s.log.InfoContext(ctx, "folder deleted", "owner", ownerLogin, "folder_id", folderID)
	return nil
}
