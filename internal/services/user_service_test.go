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

type UserServiceTestSuite struct {
	suite.Suite
	mockRepos   *repositories.Repositories
	userService *UserService
	ctx         context.Context
	userID      uuid.UUID
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.userID = uuid.New()
	suite.mockRepos = &repositories.Repositories{
		User:       &mocks.MockUserRepository{},
		Trade:      &mocks.MockTradeRepository{},
		Option:     &mocks.MockOptionRepository{},
		Collection: &mocks.MockCollectionRepository{},
		Preference: &mocks.MockPreferenceRepository{},
	}
	suite.userService = NewUserService(suite.mockRepos)
}

func (suite *UserServiceTestSuite) userRepo() *mocks.MockUserRepository {
	return suite.mockRepos.User.(*mocks.MockUserRepository)
}

func (suite *UserServiceTestSuite) TestGetCurrentUser_Success() {
	user := &models.User{
		ID:       suite.userID,
		Username: "trader",
		Email:    "trader@example.com",
		Settings: models.JSON{"theme": "dark"},
	}
	suite.userRepo().On("GetByID", suite.ctx, suite.userID).Return(user, nil)

	info, err := suite.userService.GetCurrentUser(suite.ctx, suite.userID)

	suite.NoError(err)
	suite.Require().NotNil(info)
	suite.Equal("trader", info.Username)
	suite.Equal("dark", info.Settings["theme"])
}

func (suite *UserServiceTestSuite) TestGetCurrentUser_NilSettingsBecomeEmptyObject() {
	user := &models.User{ID: suite.userID, Username: "trader", Email: "trader@example.com"}
	suite.userRepo().On("GetByID", suite.ctx, suite.userID).Return(user, nil)

	info, err := suite.userService.GetCurrentUser(suite.ctx, suite.userID)

	suite.NoError(err)
	suite.Require().NotNil(info)
	suite.NotNil(info.Settings)
	suite.Empty(info.Settings)
}

func (suite *UserServiceTestSuite) TestGetCurrentUser_NotFound() {
	suite.userRepo().On("GetByID", suite.ctx, suite.userID).Return(nil, nil)

	info, err := suite.userService.GetCurrentUser(suite.ctx, suite.userID)

	suite.ErrorIs(err, repositories.ErrUserNotFound)
	suite.Nil(info)
}

func (suite *UserServiceTestSuite) TestUpdateCurrentUser_PatchesOnlyPresentFields() {
	avatar := "https://example.com/a.png"
	user := &models.User{
		ID:       suite.userID,
		Username: "trader",
		Email:    "trader@example.com",
		Avatar:   &avatar,
		Settings: models.JSON{"theme": "dark"},
	}
	suite.userRepo().On("GetByID", suite.ctx, suite.userID).Return(user, nil)
	suite.userRepo().On("Update", suite.ctx, user).Return(nil)

	newName := "renamed"
	info, err := suite.userService.UpdateCurrentUser(suite.ctx, suite.userID,
		&UpdateUserRequest{Username: &newName})

	suite.NoError(err)
	suite.Require().NotNil(info)
	suite.Equal("renamed", info.Username)
	suite.Equal("dark", info.Settings["theme"])
	suite.Require().NotNil(info.Avatar)
	suite.Equal(avatar, *info.Avatar)
}

func (suite *UserServiceTestSuite) TestUpdateCurrentUser_NotFound() {
	suite.userRepo().On("GetByID", suite.ctx, suite.userID).Return(nil, nil)

	info, err := suite.userService.UpdateCurrentUser(suite.ctx, suite.userID, &UpdateUserRequest{})

	suite.ErrorIs(err, repositories.ErrUserNotFound)
	suite.Nil(info)
	suite.userRepo().AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
