package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/risinghub/hub/internal/adapters/repository/sqlstore"
	"github.com/risinghub/hub/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	store := newSQLiteStore(t)
	repo := sqlstore.NewUserRepository(store)
	ctx := context.Background()

	user := &domain.User{Email: "ikora@example.com", Name: "Ikora"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "ikora@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID.String())
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ikora", byID.Name)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAuthRepository_RefreshTokenLifecycle(t *testing.T) {
	eachDriver(t, func(t *testing.T, store *sqlstore.Store) {
		repo := sqlstore.NewAuthRepository(store)
		user := seedUser(t, store)
		ctx := context.Background()

		token := &domain.RefreshToken{
			UserID:    user.ID,
			TokenHash: "hash-" + user.ID.String(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.StoreRefreshToken(ctx, token))

		got, err := repo.GetRefreshTokenByHash(ctx, token.TokenHash)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.UserID)
		assert.False(t, got.Revoked)
		assert.WithinDuration(t, token.ExpiresAt, got.ExpiresAt, time.Second)

		require.NoError(t, repo.RevokeRefreshToken(ctx, got.ID.String()))

		got, err = repo.GetRefreshTokenByHash(ctx, token.TokenHash)
		require.NoError(t, err)
		assert.True(t, got.Revoked)

		none, err := repo.GetRefreshTokenByHash(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}
