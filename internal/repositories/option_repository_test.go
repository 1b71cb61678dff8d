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

func TestOptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	item := &models.OptionItem{Name: "Gold", IsActive: true}
	require.NoError(t, repo.Create(ctx, models.OptionKindCommodity, item, nil))
	assert.NotEqual(t, uuid.Nil, item.ID)

	byID, err := repo.GetByID(ctx, models.OptionKindCommodity, item.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Gold", byID.Name)

	byName, err := repo.GetByName(ctx, models.OptionKindCommodity, "Gold", nil)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, item.ID, byName.ID)

	missing, err := repo.GetByID(ctx, models.OptionKindCommodity, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOptionRepository_UnknownKindRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOptionRepository(db)

	_, err := repo.List(context.Background(), models.OptionKind("sessions"), nil, false)
	assert.ErrorIs(t, err, models.ErrUnknownOptionKind)
}

func TestOptionRepository_DuplicateNameRejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	require.NoError(t, repo.Create(ctx, models.OptionKindTimeframe, &models.OptionItem{Name: "H4", IsActive: true}, nil))

	err := repo.Create(ctx, models.OptionKindTimeframe, &models.OptionItem{Name: "H4", IsActive: true}, nil)
	assert.ErrorIs(t, err, ErrOptionNameExists)
}

func TestOptionRepository_TagsScopedPerUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	alice := createTestUser(t, db)
	bob := createTestUser(t, db)

	// Both users can own a tag with the same name
	require.NoError(t, repo.Create(ctx, models.OptionKindTag, &models.OptionItem{Name: "news", IsActive: true}, &alice.ID))
	require.NoError(t, repo.Create(ctx, models.OptionKindTag, &models.OptionItem{Name: "news", IsActive: true}, &bob.ID))
	require.NoError(t, repo.Create(ctx, models.OptionKindTag, &models.OptionItem{Name: "scalp", IsActive: true}, &alice.ID))

	aliceTags, err := repo.List(ctx, models.OptionKindTag, &alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, aliceTags, 2)

	bobTags, err := repo.List(ctx, models.OptionKindTag, &bob.ID, false)
	require.NoError(t, err)
	assert.Len(t, bobTags, 1)

	// But the same user cannot duplicate a name
	err = repo.Create(ctx, models.OptionKindTag, &models.OptionItem{Name: "news", IsActive: true}, &alice.ID)
	assert.ErrorIs(t, err, ErrOptionNameExists)
}

func TestOptionRepository_List_OrderAndActiveFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	require.NoError(t, repo.Create(ctx, models.OptionKindEntryType, &models.OptionItem{Name: "Pin Bar", DisplayOrder: 2, IsActive: true}, nil))
	require.NoError(t, repo.Create(ctx, models.OptionKindEntryType, &models.OptionItem{Name: "Engulfing", DisplayOrder: 1, IsActive: true}, nil))
	require.NoError(t, repo.Create(ctx, models.OptionKindEntryType, &models.OptionItem{Name: "Retired", DisplayOrder: 0, IsActive: false}, nil))

	all, err := repo.List(ctx, models.OptionKindEntryType, nil, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Retired", all[0].Name)
	assert.Equal(t, "Engulfing", all[1].Name)
	assert.Equal(t, "Pin Bar", all[2].Name)

	active, err := repo.List(ctx, models.OptionKindEntryType, nil, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Engulfing", active[0].Name)
}

func TestOptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	item := &models.OptionItem{Name: "Trend", IsActive: true}
	require.NoError(t, repo.Create(ctx, models.OptionKindTradeType, item, nil))

	err := repo.Update(ctx, models.OptionKindTradeType, item.ID, map[string]interface{}{
		"name":      "Trend Continuation",
		"is_active": false,
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, models.OptionKindTradeType, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trend Continuation", updated.Name)
	assert.False(t, updated.IsActive)

	err = repo.Update(ctx, models.OptionKindTradeType, uuid.New(), map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestOptionRepository_Delete_GuardsReferencedEntries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fx := setupTradeFixtures(t, db)
	repo := NewOptionRepository(db)
	tradeRepo := NewTradeRepository(db)

	trade := newTestTrade(fx, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 1.0)
	require.NoError(t, tradeRepo.Create(ctx, trade, []uuid.UUID{fx.entryType.ID}, nil))

	// Referenced directly by a trade column
	err := repo.Delete(ctx, models.OptionKindCommodity, fx.commodity.ID)
	assert.ErrorIs(t, err, ErrOptionInUse)

	// Referenced through the entry-type join table
	err = repo.Delete(ctx, models.OptionKindEntryType, fx.entryType.ID)
	assert.ErrorIs(t, err, ErrOptionInUse)

	// Unreferenced entries delete fine
	unused := createTestOption(t, db, models.OptionKindCommodity, "Silver", nil)
	require.NoError(t, repo.Delete(ctx, models.OptionKindCommodity, unused.ID))

	gone, err := repo.GetByID(ctx, models.OptionKindCommodity, unused.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = repo.Delete(ctx, models.OptionKindCommodity, uuid.New())
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestOptionRepository_UsageCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	fx := setupTradeFixtures(t, db)
	repo := NewOptionRepository(db)
	tradeRepo := NewTradeRepository(db)

	for i := 0; i < 3; i++ {
		trade := newTestTrade(fx, time.Date(2024, 3, 15+i, 10, 0, 0, 0, time.UTC), 1.0)
		require.NoError(t, tradeRepo.Create(ctx, trade, []uuid.UUID{fx.entryType.ID}, nil))
	}

	count, err := repo.UsageCount(ctx, models.OptionKindCommodity, fx.commodity.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.UsageCount(ctx, models.OptionKindEntryType, fx.entryType.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.UsageCount(ctx, models.OptionKindCommodity, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOptionRepository_Reorder_AllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	first := createTestOption(t, db, models.OptionKindTimeframe, "M15", nil)
	second := createTestOption(t, db, models.OptionKindTimeframe, "H1", nil)

	// A batch with one unknown id rolls everything back
	err := repo.Reorder(ctx, models.OptionKindTimeframe, []models.ReorderItem{
		{ID: first.ID, DisplayOrder: 10},
		{ID: uuid.New(), DisplayOrder: 20},
	})
	assert.ErrorIs(t, err, ErrOptionNotFound)

	unchanged, err := repo.GetByID(ctx, models.OptionKindTimeframe, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unchanged.DisplayOrder)

	// A fully valid batch applies
	require.NoError(t, repo.Reorder(ctx, models.OptionKindTimeframe, []models.ReorderItem{
		{ID: first.ID, DisplayOrder: 2},
		{ID: second.ID, DisplayOrder: 1},
	}))

	items, err := repo.List(ctx, models.OptionKindTimeframe, nil, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "H1", items[0].Name)
	assert.Equal(t, "M15", items[1].Name)
}

func TestOptionRepository_MaxDisplayOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOptionRepository(db)

	max, err := repo.MaxDisplayOrder(ctx, models.OptionKindCommodity, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	require.NoError(t, repo.Create(ctx, models.OptionKindCommodity, &models.OptionItem{Name: "Gold", DisplayOrder: 4, IsActive: true}, nil))
	require.NoError(t, repo.Create(ctx, models.OptionKindCommodity, &models.OptionItem{Name: "Oil", DisplayOrder: 9, IsActive: true}, nil))

	max, err = repo.MaxDisplayOrder(ctx, models.OptionKindCommodity, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, max)
}
