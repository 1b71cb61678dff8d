package repositories

import (
	"context"
	"testing"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := &models.User{
		ID:       uuid.New(),
		Username: "journaler",
		Email:    "journaler@example.com",
		Settings: models.JSON{"theme": "dark"},
	}
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "journaler", byID.Username)

	byEmail, err := repo.GetByEmail(ctx, "journaler@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{
		ID: uuid.New(), Username: "first", Email: "same@example.com", Settings: models.JSON{},
	}))

	err := repo.Create(ctx, &models.User{
		ID: uuid.New(), Username: "second", Email: "same@example.com", Settings: models.JSON{},
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	user := createTestUser(t, db)

	user.Username = "renamed"
	avatar := "https://example.com/a.png"
	user.Avatar = &avatar
	require.NoError(t, repo.Update(ctx, user))

	loaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Username)
	require.NotNil(t, loaded.Avatar)
	assert.Equal(t, avatar, *loaded.Avatar)
}

func TestUserRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	createTestUser(t, db)
	createTestUser(t, db)

	count, err = repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
