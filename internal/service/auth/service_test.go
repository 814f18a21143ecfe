package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	postgres "github.com/daybookapp/daybook-server/internal/adapter/postgres"
	catalogrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/catalog"
	entryrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/entry"
	folderrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/folder"
	"github.com/daybookapp/daybook-server/internal/adapter/postgres/testhelper"
	todorepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/todo"
	userrepo "github.com/daybookapp/daybook-server/internal/adapter/postgres/user"
	"github.com/daybookapp/daybook-server/internal/config"
	"github.com/daybookapp/daybook-server/internal/domain"
	"github.com/daybookapp/daybook-server/internal/service/auth"
)

var testAuthCfg = config.AuthConfig{
	PasswordHashCost:  bcrypt.MinCost,
	MinPasswordLength: 8,
}

// newService wires the auth service against the shared test database.
func newService(t *testing.T) (*auth.Service, *pgxpool.Pool) {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	txm := postgres.NewTxManager(pool)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := auth.NewService(logger,
		userrepo.New(pool),
		folderrepo.New(pool, txm),
		entryrepo.New(pool),
		todorepo.New(pool),
		catalogrepo.New(pool),
		txm,
		testAuthCfg,
	)
	return svc, pool
}

func registerInput() auth.RegisterInput {
	suffix := uuid.New().String()[:8]
	return auth.RegisterInput{
		Login:    "reg-" + suffix,
		Email:    "reg-" + suffix + "@example.com",
		Password: "correct horse",
	}
}

func TestService_Register_SeedsStarterState(t *testing.T) {
	t.Parallel()
	svc, pool := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	// One default folder holding the welcome entry.
	var folderName string
	var itemCount int
	err := pool.QueryRow(ctx,
		`SELECT name, item_count FROM folders WHERE owner_login = $1`, in.Login,
	).Scan(&folderName, &itemCount)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFolderName, folderName)
	assert.Equal(t, 1, itemCount)

	assert.Equal(t, 1, testhelper.CountRows(t, pool, "entries", in.Login))
	assert.Equal(t, 2, testhelper.CountRows(t, pool, "todos", in.Login))
	// One activity, two emotions, one tag.
	assert.Equal(t, 4, testhelper.CountRows(t, pool, "catalog_items", in.Login))
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	t.Parallel()
	svc, pool := newService(t)
	ctx := context.Background()

	in := registerInput()
	in.Email = "  MiXeD@Example.COM "
	require.NoError(t, svc.Register(ctx, in))

	var email string
	err := pool.QueryRow(ctx,
		`SELECT email FROM users WHERE login = $1`, in.Login,
	).Scan(&email)
	require.NoError(t, err)
	assert.Equal(t, "mixed@example.com", email)
}

func TestService_Register_TakenLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	err := svc.Register(ctx, in)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestService_Register_InvalidInput(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	in := registerInput()
	in.Password = "short"
	err := svc.Register(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrValidation)
}

// failingTodos breaks the bootstrap mid-transaction.
type failingTodos struct{}

func (failingTodos) Insert(context.Context, string, string) (int64, error) {
	return 0, errors.New("todos table unavailable")
}

func TestService_Register_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	txm := postgres.NewTxManager(pool)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := auth.NewService(logger,
		userrepo.New(pool),
		folderrepo.New(pool, txm),
		entryrepo.New(pool),
		failingTodos{},
		catalogrepo.New(pool),
		txm,
		testAuthCfg,
	)

	ctx := context.Background()
	in := registerInput()
	err := svc.Register(ctx, in)
	require.Error(t, err)

	// The failed bootstrap must leave no trace of the account.
	var exists bool
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`, in.Login,
	).Scan(&exists))
	assert.False(t, exists)
	assert.Equal(t, 0, testhelper.CountRows(t, pool, "folders", in.Login))
	assert.Equal(t, 0, testhelper.CountRows(t, pool, "entries", in.Login))
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	require.NoError(t, svc.Login(ctx, in.Login, in.Password))

	err := svc.Login(ctx, in.Login, "wrong password")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.Login(ctx, "ghost-"+in.Login, in.Password)
	require.ErrorIs(t, err, domain.ErrUnauthorized,
		"unknown login and wrong password must be indistinguishable")
}

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	err := svc.ChangePassword(ctx, in.Login, "wrong old", "new password 1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.ChangePassword(ctx, in.Login, in.Password, "new password 1"))

	require.ErrorIs(t, svc.Login(ctx, in.Login, in.Password), domain.ErrUnauthorized)
	require.NoError(t, svc.Login(ctx, in.Login, "new password 1"))
}

func TestService_ChangePassword_TooShort(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	err := svc.ChangePassword(context.Background(), "whoever", "old", "short")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ChangeEmail(t *testing.T) {
	t.Parallel()
	svc, pool := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	require.NoError(t, svc.ChangeEmail(ctx, in.Login, " New@Example.com "))

	var email string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT email FROM users WHERE login = $1`, in.Login,
	).Scan(&email))
	assert.Equal(t, "new@example.com", email)

	err := svc.ChangeEmail(ctx, in.Login, "not-an-address")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_DeleteAccount_RemovesEverything(t *testing.T) {
	t.Parallel()
	svc, pool := newService(t)
	ctx := context.Background()

	in := registerInput()
	require.NoError(t, svc.Register(ctx, in))

	require.NoError(t, svc.DeleteAccount(ctx, in.Login))

	for _, table := range []string{"folders", "entries", "todos", "catalog_items"} {
		assert.Zero(t, testhelper.CountRows(t, pool, table, in.Login), table)
	}

	err := svc.DeleteAccount(ctx, in.Login)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
