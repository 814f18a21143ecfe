package folder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	"github.com/daybookapp/daybook-server/internal/adapter/postgres/folder"
	"github.com/daybookapp/daybook-server/internal/adapter/postgres/testhelper"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*folder.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return folder.New(pool, postgres.NewTxManager(pool)), pool
}

func TestRepo_Insert_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	id, err := repo.Insert(ctx, u.Login, "Travel")
	if err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	got, err := repo.GetOwned(ctx, u.Login, id)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if got.Name != "Travel" {
		t.Errorf("Name mismatch: got %s, want Travel", got.Name)
	}
	if got.ItemCount != 0 {
		t.Errorf("new folder should start with item_count 0, got %d", got.ItemCount)
	}
}

func TestRepo_Insert_DuplicateNameSameOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	if _, err := repo.Insert(ctx, u.Login, "Notes"); err != nil {
		t.Fatalf("Insert first: %v", err)
	}
	_, err := repo.Insert(ctx, u.Login, "Notes")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Insert_SameNameDifferentOwners(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u1 := testhelper.SeedUser(t, pool)
	u2 := testhelper.SeedUser(t, pool)

	if _, err := repo.Insert(ctx, u1.Login, "Notes"); err != nil {
		t.Fatalf("Insert for first owner: %v", err)
	}
	if _, err := repo.Insert(ctx, u2.Login, "Notes"); err != nil {
		t.Fatalf("same name for another owner should be allowed: %v", err)
	}
}

func TestRepo_GetOwned_OtherOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	f := testhelper.SeedFolder(t, pool, owner.Login)

	_, err := repo.GetOwned(ctx, stranger.Login, f.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign folder, got %v", err)
	}
}

func TestRepo_ListByOwner_OrderedByCreation(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	first := testhelper.SeedFolder(t, pool, u.Login)
	second := testhelper.SeedFolder(t, pool, u.Login)

	folders, err := repo.ListByOwner(ctx, u.Login)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}
	if folders[0].ID != first.ID || folders[1].ID != second.ID {
		t.Errorf("folders not in creation order: got [%d %d], want [%d %d]",
			folders[0].ID, folders[1].ID, first.ID, second.ID)
	}
}

func TestRepo_ListByOwner_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	u := testhelper.SeedUser(t, pool)

	folders, err := repo.ListByOwner(context.Background(), u.Login)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if folders == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(folders) != 0 {
		t.Fatalf("expected no folders, got %d", len(folders))
	}
}

func TestRepo_Rename(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	f := testhelper.SeedFolder(t, pool, u.Login)

	if err := repo.Rename(ctx, u.Login, f.ID, "Renamed"); err != nil {
		t.Fatalf("Rename: unexpected error: %v", err)
	}

	got, err := repo.GetOwned(ctx, u.Login, f.ID)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name mismatch: got %s, want Renamed", got.Name)
	}
}

func TestRepo_Rename_NameCollision(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	f1 := testhelper.SeedFolder(t, pool, u.Login)
	f2 := testhelper.SeedFolder(t, pool, u.Login)

	err := repo.Rename(ctx, u.Login, f2.ID, f1.Name)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Delete_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	keep := testhelper.SeedFolder(t, pool, u.Login)
	doomed := testhelper.SeedFolder(t, pool, u.Login)

	if err := repo.Delete(ctx, u.Login, doomed.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	if _, err := repo.GetOwned(ctx, u.Login, doomed.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted folder still readable: %v", err)
	}
	if _, err := repo.GetOwned(ctx, u.Login, keep.ID); err != nil {
		t.Fatalf("sibling folder should survive: %v", err)
	}
}

func TestRepo_Delete_LastFolderRefused(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	only := testhelper.SeedFolder(t, pool, u.Login)

	err := repo.Delete(ctx, u.Login, only.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for last folder, got %v", err)
	}

	if _, err := repo.GetOwned(ctx, u.Login, only.ID); err != nil {
		t.Fatalf("refused delete must keep the folder: %v", err)
	}
}

func TestRepo_Delete_OtherOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	testhelper.SeedFolder(t, pool, owner.Login)
	f := testhelper.SeedFolder(t, pool, owner.Login)

	err := repo.Delete(ctx, stranger.Login, f.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign folder, got %v", err)
	}
}

func TestRepo_Counters(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	f := testhelper.SeedFolder(t, pool, u.Login)

	if err := repo.IncrementCount(ctx, f.ID); err != nil {
		t.Fatalf("IncrementCount: %v", err)
	}
	if err := repo.IncrementCount(ctx, f.ID); err != nil {
		t.Fatalf("IncrementCount: %v", err)
	}
	if n := testhelper.FolderItemCount(t, pool, f.ID); n != 2 {
		t.Fatalf("expected item_count 2, got %d", n)
	}

	if err := repo.DecrementCount(ctx, f.ID); err != nil {
		t.Fatalf("DecrementCount: %v", err)
	}
	if n := testhelper.FolderItemCount(t, pool, f.ID); n != 1 {
		t.Fatalf("expected item_count 1, got %d", n)
	}
}

func TestRepo_DecrementCount_FloorsAtZero(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	f := testhelper.SeedFolder(t, pool, u.Login)

	if err := repo.DecrementCount(ctx, f.ID); err != nil {
		t.Fatalf("DecrementCount at zero: %v", err)
	}
	if n := testhelper.FolderItemCount(t, pool, f.ID); n != 0 {
		t.Fatalf("counter must not go negative, got %d", n)
	}
}

func TestRepo_IncrementCount_UnknownFolder(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.IncrementCount(context.Background(), 999999999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
