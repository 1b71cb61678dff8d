package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockOptionService mocks OptionServiceInterface for handler tests
type MockOptionService struct {
	mock.Mock
}

func (m *MockOptionService) ListOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, activeOnly bool) ([]models.OptionItem, error) {
	args := m.Called(ctx, kind, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OptionItem), args.Error(1)
}

func (m *MockOptionService) CreateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.CreateOptionRequest) (*models.OptionItem, error) {
	args := m.Called(ctx, kind, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptionItem), args.Error(1)
}

func (m *MockOptionService) UpdateOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID, req *models.UpdateOptionRequest) (*models.OptionItem, error) {
	args := m.Called(ctx, kind, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptionItem), args.Error(1)
}

func (m *MockOptionService) DeleteOption(ctx context.Context, kind models.OptionKind, userID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, kind, userID, id)
	return args.Error(0)
}

func (m *MockOptionService) ReorderOptions(ctx context.Context, kind models.OptionKind, userID uuid.UUID, req *models.ReorderOptionsRequest) error {
	args := m.Called(ctx, kind, userID, req)
	return args.Error(0)
}

func (m *MockOptionService) UsageCount(ctx context.Context, kind models.OptionKind, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(int64), args.Error(1)
}

type OptionHandlerTestSuite struct {
	suite.Suite
	handler     *OptionHandler
	mockService *MockOptionService
	userID      uuid.UUID
}

func (suite *OptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockOptionService)
	suite.handler = NewOptionHandler(suite.mockService)
	suite.userID = uuid.New()
}

func (suite *OptionHandlerTestSuite) testContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	c.Request = req
	c.Set("user_id", suite.userID)
	return c, w
}

func (suite *OptionHandlerTestSuite) TestListOptions_ActiveQueryNarrows() {
	suite.mockService.On("ListOptions", mock.Anything, models.OptionKindCommodity, suite.userID, true).
		Return([]models.OptionItem{{ID: uuid.New(), Name: "Gold", IsActive: true}}, nil)

	c, w := suite.testContext("GET", "/v1/options/commodities?active=true", nil)
	c.Params = []gin.Param{{Key: "kind", Value: "commodities"}}

	suite.handler.ListOptions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *OptionHandlerTestSuite) TestListOptions_UnknownKindRejected() {
	c, w := suite.testContext("GET", "/v1/options/users", nil)
	c.Params = []gin.Param{{Key: "kind", Value: "users"}}

	suite.handler.ListOptions(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errBlock := response["error"].(map[string]interface{})
	suite.Equal("UNKNOWN_OPTION_KIND", errBlock["code"])
	suite.mockService.AssertNotCalled(suite.T(), "ListOptions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OptionHandlerTestSuite) TestCreateOption_Success() {
	suite.mockService.On("CreateOption", mock.Anything, models.OptionKindTag, suite.userID, mock.AnythingOfType("*models.CreateOptionRequest")).
		Return(&models.OptionItem{ID: uuid.New(), Name: "news", DisplayOrder: 1, IsActive: true}, nil)

	body, _ := json.Marshal(map[string]string{"name": "news"})
	c, w := suite.testContext("POST", "/v1/options/tags", body)
	c.Params = []gin.Param{{Key: "kind", Value: "tags"}}

	suite.handler.CreateOption(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *OptionHandlerTestSuite) TestCreateOption_DuplicateNameMapsTo409() {
	suite.mockService.On("CreateOption", mock.Anything, models.OptionKindCommodity, suite.userID, mock.AnythingOfType("*models.CreateOptionRequest")).
		Return(nil, repositories.ErrOptionNameExists)

	body, _ := json.Marshal(map[string]string{"name": "Gold"})
	c, w := suite.testContext("POST", "/v1/options/commodities", body)
	c.Params = []gin.Param{{Key: "kind", Value: "commodities"}}

	suite.handler.CreateOption(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *OptionHandlerTestSuite) TestDeleteOption_InUseMapsTo409() {
	id := uuid.New()
	suite.mockService.On("DeleteOption", mock.Anything, models.OptionKindEntryType, suite.userID, id).
		Return(repositories.ErrOptionInUse)

	c, w := suite.testContext("DELETE", "/v1/options/entry-types/"+id.String(), nil)
	c.Params = []gin.Param{{Key: "kind", Value: "entry-types"}, {Key: "id", Value: id.String()}}

	suite.handler.DeleteOption(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errBlock := response["error"].(map[string]interface{})
	suite.Equal("REFERENCE_CONFLICT", errBlock["code"])
}

func (suite *OptionHandlerTestSuite) TestReorderOptions_Success() {
	suite.mockService.On("ReorderOptions", mock.Anything, models.OptionKindTimeframe, suite.userID, mock.AnythingOfType("*models.ReorderOptionsRequest")).
		Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": uuid.NewString(), "display_order": 1},
			{"id": uuid.NewString(), "display_order": 2},
		},
	})
	c, w := suite.testContext("PUT", "/v1/options/timeframes/reorder", body)
	c.Params = []gin.Param{{Key: "kind", Value: "timeframes"}}

	suite.handler.ReorderOptions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *OptionHandlerTestSuite) TestUsageCheck_Success() {
	id := uuid.New()
	suite.mockService.On("UsageCount", mock.Anything, models.OptionKindCommodity, id).
		Return(int64(3), nil)

	c, w := suite.testContext("GET", "/v1/options/usage?type=commodities&id="+id.String(), nil)

	suite.handler.UsageCheck(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	suite.Equal(float64(3), data["count"])
}

func (suite *OptionHandlerTestSuite) TestUsageCheck_UnknownKindRejected() {
	c, w := suite.testContext("GET", "/v1/options/usage?type=widgets&id="+uuid.NewString(), nil)

	suite.handler.UsageCheck(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UsageCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestOptionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OptionHandlerTestSuite))
}
