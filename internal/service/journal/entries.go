package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// CreateEntry saves a new entry with its tag/activity/emotion links and bumps
// the target folder's item counter, all in one transaction. The folder must
// exist and belong to ownerLogin, otherwise domain.ErrNotFound.
// Returns the generated entry id.
func (s *Service) CreateEntry(ctx context.Context, ownerLogin string, input EntryInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var entryID int64

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.folders.GetOwned(txCtx, ownerLogin, input.FolderID); err != nil {
			return fmt.Errorf("target folder: %w", err)
		}

		e := input.toEntry(ownerLogin)
		id, err := s.entries.Insert(txCtx, &e)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		entryID = id

		if err := s.insertAllLinks(txCtx, id, input); err != nil {
			return err
		}

		if err := s.folders.IncrementCount(txCtx, input.FolderID); err != nil {
			return fmt.Errorf("increment folder counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("journal.CreateEntry: %w", err)
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("owner", ownerLogin),
		slog.Int64("entry_id", entryID),
		slog.Int64("folder_id", input.FolderID),
	)

	return entryID, nil
}

// UpdateEntry overwrites the entry's scalar fields and fully replaces its
// three association sets. When the folder changes, the counter moves with the
// entry: the old folder is decremented (floored at zero) and the new one
// incremented. Everything runs in one transaction.
// Returns domain.ErrNotFound when the entry is missing or owned by someone else.
func (s *Service) UpdateEntry(ctx context.Context, ownerLogin string, entryID int64, input EntryInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		oldFolderID, err := s.entries.FolderOf(txCtx, ownerLogin, entryID)
		if err != nil {
			return fmt.Errorf("read current folder: %w", err)
		}

		folderChanged := oldFolderID != input.FolderID
		if folderChanged {
			if _, err := s.folders.GetOwned(txCtx, ownerLogin, input.FolderID); err != nil {
				return fmt.Errorf("target folder: %w", err)
			}
		}

		e := input.toEntry(ownerLogin)
		e.ID = entryID
		if err := s.entries.UpdateScalars(txCtx, ownerLogin, &e); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}

		for _, kind := range []domain.CatalogKind{domain.KindTag, domain.KindActivity, domain.KindEmotion} {
			if err := s.entries.ClearLinks(txCtx, entryID, kind); err != nil {
				return fmt.Errorf("clear %s links: %w", kind, err)
			}
		}
		if err := s.insertAllLinks(txCtx, entryID, input); err != nil {
			return err
		}

		if folderChanged && oldFolderID > 0 && input.FolderID > 0 {
			if err := s.folders.DecrementCount(txCtx, oldFolderID); err != nil {
				return fmt.Errorf("decrement old folder counter: %w", err)
			}
			if err := s.folders.IncrementCount(txCtx, input.FolderID); err != nil {
				return fmt.Errorf("increment new folder counter: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("journal.UpdateEntry: %w", err)
	}

	s.log.InfoContext(ctx, "entry updated",
		slog.String("owner", ownerLogin),
		slog.Int64("entry_id", entryID),
	)

	return nil
}

// DeleteEntry removes the entry and all its association rows in one
// transaction. The entry row is filtered by both id and owner, so guessing a
// foreign id reports domain.ErrNotFound and deletes nothing.
//
// The owning folder's item counter is left untouched: the product has always
// counted this way, and live clients reconcile the drift on folder rename.
// Changing it is tracked separately from this code path.
func (s *Service) DeleteEntry(ctx context.Context, ownerLogin string, entryID int64) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, kind := range []domain.CatalogKind{domain.KindTag, domain.KindActivity, domain.KindEmotion} {
			if err := s.entries.ClearLinks(txCtx, entryID, kind); err != nil {
				return fmt.Errorf("clear %s links: %w", kind, err)
			}
		}
		if err := s.entries.Delete(txCtx, ownerLogin, entryID); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("journal.DeleteEntry: %w", err)
	}

	s.log.InfoContext(ctx, "entry deleted",
		slog.String("owner", ownerLogin),
		slog.Int64("entry_id", entryID),
	)

	return nil
}

// Entries returns the user's entries in one folder for a calendar month,
// ordered by ascending id and hydrated with their full catalog item sets.
func (s *Service) Entries(ctx context.Context, ownerLogin string, folderID int64, year, month int) ([]domain.Entry, error) {
	if folderID <= 0 {
		return nil, domain.NewValidationError("folderId", "must be a positive id")
	}
	if month < 1 || month > 12 {
		return nil, domain.NewValidationError("month", "must be in 1..12")
	}

	entries, err := s.entries.ListByFolderMonth(ctx, ownerLogin, folderID, year, month)
	if err != nil {
		return nil, fmt.Errorf("journal.Entries: %w", err)
	}
	if err := s.entries.Hydrate(ctx, entries); err != nil {
		return nil, fmt.Errorf("journal.Entries: %w", err)
	}
	return entries, nil
}

func (s *Service) insertAllLinks(ctx context.Context, entryID int64, input EntryInput) error {
	links := []struct {
		kind domain.CatalogKind
		ids  []int64
	}{
		{domain.KindTag, input.TagIDs},
		{domain.KindActivity, input.ActivityIDs},
		{domain.KindEmotion, input.EmotionIDs},
	}
	for _, l := range links {
		if err := s.entries.InsertLinks(ctx, entryID, l.kind, l.ids); err != nil {
			return fmt.Errorf("link %s items: %w", l.kind, err)
		}
	}
	return nil
}
