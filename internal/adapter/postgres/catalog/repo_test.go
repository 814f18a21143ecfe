package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daybookapp/daybook-server/internal/adapter/postgres/catalog"
	"github.com/daybookapp/daybook-server/internal/adapter/postgres/testhelper"
	"github.com/daybookapp/daybook-server/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*catalog.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return catalog.New(pool), pool
}

func TestRepo_Insert_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	created, err := repo.Insert(ctx, &domain.CatalogItem{
		OwnerLogin: u.Login,
		Kind:       domain.KindActivity,
		Label:      "Running",
		IconID:     3,
	})
	if err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	items, err := repo.ListByOwner(ctx, u.Login, domain.KindActivity)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 1 || items[0].Label != "Running" || items[0].IconID != 3 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestRepo_Insert_InvalidKind(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	u := testhelper.SeedUser(t, pool)

	_, err := repo.Insert(context.Background(), &domain.CatalogItem{
		OwnerLogin: u.Login,
		Kind:       "mood",
		Label:      "nope",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRepo_Insert_DuplicateLabelSameKind(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	item := domain.CatalogItem{OwnerLogin: u.Login, Kind: domain.KindTag, Label: "work"}
	if _, err := repo.Insert(ctx, &item); err != nil {
		t.Fatalf("Insert first: %v", err)
	}
	_, err := repo.Insert(ctx, &item)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Insert_SameLabelDifferentKind(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)

	if _, err := repo.Insert(ctx, &domain.CatalogItem{OwnerLogin: u.Login, Kind: domain.KindTag, Label: "reading"}); err != nil {
		t.Fatalf("Insert tag: %v", err)
	}
	if _, err := repo.Insert(ctx, &domain.CatalogItem{OwnerLogin: u.Login, Kind: domain.KindActivity, Label: "reading"}); err != nil {
		t.Fatalf("same label under another kind should be allowed: %v", err)
	}
}

func TestRepo_ListByOwner_KindScoped(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	tag := testhelper.SeedCatalogItem(t, pool, u.Login, domain.KindTag)
	testhelper.SeedCatalogItem(t, pool, u.Login, domain.KindEmotion)

	items, err := repo.ListByOwner(ctx, u.Login, domain.KindTag)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 1 || items[0].ID != tag.ID {
		t.Fatalf("expected only the tag, got %+v", items)
	}
}

func TestRepo_Delete_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	u := testhelper.SeedUser(t, pool)
	item := testhelper.SeedCatalogItem(t, pool, u.Login, domain.KindEmotion)

	if err := repo.Delete(ctx, u.Login, domain.KindEmotion, item.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	items, err := repo.ListByOwner(ctx, u.Login, domain.KindEmotion)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no emotions left, got %+v", items)
	}
}

func TestRepo_Delete_WrongKind(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	u := testhelper.SeedUser(t, pool)
	item := testhelper.SeedCatalogItem(t, pool, u.Login, domain.KindTag)

	err := repo.Delete(context.Background(), u.Login, domain.KindActivity, item.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for kind mismatch, got %v", err)
	}
}

func TestRepo_Delete_OtherOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	item := testhelper.SeedCatalogItem(t, pool, owner.Login, domain.KindTag)

	err := repo.Delete(context.Background(), stranger.Login, domain.KindTag, item.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign item, got %v", err)
	}
}
