package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daybookapp/daybook-server/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row with a throwaway password hash.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		Login:        "testuser-" + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$04$" + suffix, // never verified by repo tests
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (login, email, password_hash) VALUES ($1, $2, $3)`,
		user.Login, user.Email, user.PasswordHash,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedFolder creates a folder for the given login and returns it.
func SeedFolder(t *testing.T, pool *pgxpool.Pool, ownerLogin string) domain.Folder {
	t.Helper()
	ctx := context.Background()

	f := domain.Folder{
		OwnerLogin: ownerLogin,
		Name:       "folder-" + uniqueSuffix(),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO folders (owner_login, name) VALUES ($1, $2) RETURNING id`,
		f.OwnerLogin, f.Name,
	).Scan(&f.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedFolder insert: %v", err)
	}

	return f
}

// SeedCatalogItem creates a catalog item of the given kind and returns it.
func SeedCatalogItem(t *testing.T, pool *pgxpool.Pool, ownerLogin string, kind domain.CatalogKind) domain.CatalogItem {
	t.Helper()
	ctx := context.Background()

	item := domain.CatalogItem{
		OwnerLogin: ownerLogin,
		Kind:       kind,
		Label:      string(kind) + "-" + uniqueSuffix(),
	}
	if kind != domain.KindTag {
		item.IconID = 7
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO catalog_items (owner_login, kind, label, icon_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		item.OwnerLogin, string(item.Kind), item.Label, item.IconID,
	).Scan(&item.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCatalogItem insert: %v", err)
	}

	return item
}

// FolderItemCount reads the denormalized counter directly.
func FolderItemCount(t *testing.T, pool *pgxpool.Pool, folderID int64) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT item_count FROM folders WHERE id = $1`, folderID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("testhelper: FolderItemCount: %v", err)
	}
	return count
}

// CountRows counts rows in a table matching owner_login.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, ownerLogin string) int {
	t.Helper()

	// table comes from test code only, never from user input
	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM `+table+` WHERE owner_login = $1`, ownerLogin,
	).Scan(&count)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return count
}
