package repositories

import (
	"context"
	"testing"
	"time"

	"tradebook-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(userID uuid.UUID, name string) *models.Collection {
	return &models.Collection{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
}

func TestCollectionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	user := createTestUser(t, db)

	collection := newTestCollection(user.ID, "Best Setups")
	require.NoError(t, repo.Create(ctx, collection))

	loaded, err := repo.GetByID(ctx, collection.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Best Setups", loaded.Name)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCollectionRepository_NameUniquePerUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	require.NoError(t, repo.Create(ctx, newTestCollection(alice.ID, "Reviews")))

	err := repo.Create(ctx, newTestCollection(alice.ID, "Reviews"))
	assert.ErrorIs(t, err, ErrCollectionNameExists)

	// A different user may reuse the name
	require.NoError(t, repo.Create(ctx, newTestCollection(bob.ID, "Reviews")))
}

func TestCollectionRepository_GetByUserID_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	require.NoError(t, repo.Create(ctx, newTestCollection(alice.ID, "A")))
	require.NoError(t, repo.Create(ctx, newTestCollection(alice.ID, "B")))
	require.NoError(t, repo.Create(ctx, newTestCollection(bob.ID, "C")))

	collections, err := repo.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, collections, 2)
}

func TestCollectionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	user := createTestUser(t, db)

	collection := newTestCollection(user.ID, "Old Name")
	require.NoError(t, repo.Create(ctx, collection))

	require.NoError(t, repo.Update(ctx, collection.ID, map[string]interface{}{"name": "New Name"}))

	loaded, err := repo.GetByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", loaded.Name)

	err = repo.Update(ctx, uuid.New(), map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCollectionRepository_SetTradesAndCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	fx := setupTradeFixtures(t, db)
	tradeRepo := NewTradeRepository(db)

	first := newTestTrade(fx, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 1.0)
	second := newTestTrade(fx, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), 1.0)
	require.NoError(t, tradeRepo.Create(ctx, first, []uuid.UUID{fx.entryType.ID}, nil))
	require.NoError(t, tradeRepo.Create(ctx, second, []uuid.UUID{fx.entryType.ID}, nil))

	collection := newTestCollection(fx.user.ID, "Winners")
	require.NoError(t, repo.Create(ctx, collection))

	require.NoError(t, repo.SetTrades(ctx, collection.ID, []uuid.UUID{first.ID, second.ID}))

	counts, err := repo.TradeCounts(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[collection.ID])

	// A later set call replaces, not appends
	require.NoError(t, repo.SetTrades(ctx, collection.ID, []uuid.UUID{second.ID}))

	counts, err = repo.TradeCounts(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[collection.ID])

	// Clearing to empty is valid
	require.NoError(t, repo.SetTrades(ctx, collection.ID, nil))

	counts, err = repo.TradeCounts(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[collection.ID])
}

func TestCollectionRepository_Delete_LeavesTradesIntact(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository(db)
	fx := setupTradeFixtures(t, db)
	tradeRepo := NewTradeRepository(db)

	trade := newTestTrade(fx, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 1.0)
	require.NoError(t, tradeRepo.Create(ctx, trade, []uuid.UUID{fx.entryType.ID}, nil))

	collection := newTestCollection(fx.user.ID, "Doomed")
	require.NoError(t, repo.Create(ctx, collection))
	require.NoError(t, repo.SetTrades(ctx, collection.ID, []uuid.UUID{trade.ID}))

	require.NoError(t, repo.Delete(ctx, collection.ID))

	gone, err := repo.GetByID(ctx, collection.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var joinRows int64
	require.NoError(t, db.Table("trade_collections").Where("collection_id = ?", collection.ID).Count(&joinRows).Error)
	assert.Equal(t, int64(0), joinRows)

	// The member trade survives
	survivor, err := tradeRepo.GetByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.NotNil(t, survivor)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}
