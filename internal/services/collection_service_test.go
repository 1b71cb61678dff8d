package services

import (
	"context"
	"testing"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"
	"tradebook-backend/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CollectionServiceTestSuite struct {
	suite.Suite
	mockRepos         *repositories.Repositories
	collectionService *CollectionService
	ctx               context.Context
	userID            uuid.UUID
}

func (suite *CollectionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.userID = uuid.New()
	suite.mockRepos = &repositories.Repositories{
		User:       &mocks.MockUserRepository{},
		Trade:      &mocks.MockTradeRepository{},
		Option:     &mocks.MockOptionRepository{},
		Collection: &mocks.MockCollectionRepository{},
		Preference: &mocks.MockPreferenceRepository{},
	}
	suite.collectionService = NewCollectionService(suite.mockRepos)
}

func (suite *CollectionServiceTestSuite) collectionRepo() *mocks.MockCollectionRepository {
	return suite.mockRepos.Collection.(*mocks.MockCollectionRepository)
}

func (suite *CollectionServiceTestSuite) tradeRepo() *mocks.MockTradeRepository {
	return suite.mockRepos.Trade.(*mocks.MockTradeRepository)
}

func (suite *CollectionServiceTestSuite) ownedCollection() *models.Collection {
	return &models.Collection{
		ID:     uuid.New(),
		UserID: suite.userID,
		Name:   "Best setups",
	}
}

func (suite *CollectionServiceTestSuite) TestCreateCollection_Success() {
	suite.collectionRepo().On("Create", suite.ctx, mock.AnythingOfType("*models.Collection")).Return(nil)

	result, err := suite.collectionService.CreateCollection(suite.ctx, suite.userID,
		&models.CreateCollectionRequest{Name: "Best setups"})

	suite.NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("Best setups", result.Name)
	suite.Equal(int64(0), result.TradeCount)
}

func (suite *CollectionServiceTestSuite) TestCreateCollection_EmptyNameRejected() {
	result, err := suite.collectionService.CreateCollection(suite.ctx, suite.userID,
		&models.CreateCollectionRequest{Name: ""})

	suite.ErrorIs(err, repositories.ErrInvalidInput)
	suite.Nil(result)
	suite.collectionRepo().AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *CollectionServiceTestSuite) TestGetUserCollections_AttachesTradeCounts() {
	first := suite.ownedCollection()
	second := suite.ownedCollection()
	suite.collectionRepo().On("GetByUserID", suite.ctx, suite.userID).
		Return([]*models.Collection{first, second}, nil)
	suite.collectionRepo().On("TradeCounts", suite.ctx, suite.userID).
		Return(map[uuid.UUID]int64{first.ID: 7}, nil)

	results, err := suite.collectionService.GetUserCollections(suite.ctx, suite.userID)

	suite.NoError(err)
	suite.Require().Len(results, 2)
	suite.Equal(int64(7), results[0].TradeCount)
	suite.Equal(int64(0), results[1].TradeCount)
}

func (suite *CollectionServiceTestSuite) TestGetCollection_ForeignCollectionLooksMissing() {
	collection := suite.ownedCollection()
	collection.UserID = uuid.New()
	suite.collectionRepo().On("GetByID", suite.ctx, collection.ID).Return(collection, nil)

	result, err := suite.collectionService.GetCollection(suite.ctx, suite.userID, collection.ID)

	suite.ErrorIs(err, repositories.ErrCollectionNotFound)
	suite.Nil(result)
}

func (suite *CollectionServiceTestSuite) TestUpdateCollection_Success() {
	collection := suite.ownedCollection()
	newName := "Refined setups"
	suite.collectionRepo().On("GetByID", suite.ctx, collection.ID).Return(collection, nil)
	suite.collectionRepo().On("Update", suite.ctx, collection.ID, map[string]interface{}{"name": newName}).
		Return(nil)
	suite.collectionRepo().On("TradeCounts", suite.ctx, suite.userID).
		Return(map[uuid.UUID]int64{collection.ID: 3}, nil)

	result, err := suite.collectionService.UpdateCollection(suite.ctx, suite.userID, collection.ID,
		&models.UpdateCollectionRequest{Name: &newName})

	suite.NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(int64(3), result.TradeCount)
	suite.collectionRepo().AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestDeleteCollection_NotFound() {
	collectionID := uuid.New()
	suite.collectionRepo().On("GetByID", suite.ctx, collectionID).Return(nil, nil)

	err := suite.collectionService.DeleteCollection(suite.ctx, suite.userID, collectionID)

	suite.ErrorIs(err, repositories.ErrCollectionNotFound)
	suite.collectionRepo().AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *CollectionServiceTestSuite) TestSetCollectionTrades_Success() {
	collection := suite.ownedCollection()
	tradeID := uuid.New()
	suite.collectionRepo().On("GetByID", suite.ctx, collection.ID).Return(collection, nil)
	suite.tradeRepo().On("GetByID", suite.ctx, tradeID).
		Return(&models.Trade{ID: tradeID, UserID: suite.userID}, nil)
	suite.collectionRepo().On("SetTrades", suite.ctx, collection.ID, []uuid.UUID{tradeID}).Return(nil)

	err := suite.collectionService.SetCollectionTrades(suite.ctx, suite.userID, collection.ID,
		&models.SetCollectionTradesRequest{TradeIDs: []uuid.UUID{tradeID}})

	suite.NoError(err)
	suite.collectionRepo().AssertExpectations(suite.T())
}

func (suite *CollectionServiceTestSuite) TestSetCollectionTrades_ForeignTradeRejectsWholeRequest() {
	collection := suite.ownedCollection()
	ownTradeID := uuid.New()
	foreignTradeID := uuid.New()
	suite.collectionRepo().On("GetByID", suite.ctx, collection.ID).Return(collection, nil)
	suite.tradeRepo().On("GetByID", suite.ctx, ownTradeID).
		Return(&models.Trade{ID: ownTradeID, UserID: suite.userID}, nil)
	suite.tradeRepo().On("GetByID", suite.ctx, foreignTradeID).
		Return(&models.Trade{ID: foreignTradeID, UserID: uuid.New()}, nil)

	err := suite.collectionService.SetCollectionTrades(suite.ctx, suite.userID, collection.ID,
		&models.SetCollectionTradesRequest{TradeIDs: []uuid.UUID{ownTradeID, foreignTradeID}})

	suite.ErrorIs(err, repositories.ErrInvalidInput)
	suite.collectionRepo().AssertNotCalled(suite.T(), "SetTrades", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionServiceTestSuite))
}
