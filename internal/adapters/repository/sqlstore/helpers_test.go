package sqlstore_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/risinghub/hub/internal/adapters/repository/sqlstore"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newSQLiteStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func newPostgresStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := sqlstore.Open(ctx, sqlstore.DriverPostgres, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

// eachDriver runs fn against a fresh SQLite store and, outside short mode,
// a Postgres container.
func eachDriver(t *testing.T, fn func(t *testing.T, store *sqlstore.Store)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newSQLiteStore(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, newPostgresStore(t))
	})
}

func seedUser(t *testing.T, store *sqlstore.Store) *domain.User {
	t.Helper()
	id := uuid.New()
	user := &domain.User{
		ID:    id,
		Email: fmt.Sprintf("guardian-%s@example.com", id),
		Name:  "Guardian",
	}
	require.NoError(t, sqlstore.NewUserRepository(store).Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, store *sqlstore.Store, author *domain.User, title string) *domain.NewsPost {
	t.Helper()
	post := &domain.NewsPost{
		ID:        uuid.New(),
		AuthorID:  author.ID,
		Title:     title,
		Body:      "Patch notes for " + title,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, sqlstore.NewNewsRepository(store).Save(context.Background(), post))
	return post
}
