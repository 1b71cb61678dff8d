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
	"tradebook-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTradeService mocks TradeServiceInterface for handler tests
type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) CreateTrade(ctx context.Context, userID uuid.UUID, req *models.CreateTradeRequest) (*services.TradeResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TradeResponse), args.Error(1)
}

func (m *MockTradeService) GetTrade(ctx context.Context, userID, tradeID uuid.UUID) (*services.TradeResponse, error) {
	args := m.Called(ctx, userID, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TradeResponse), args.Error(1)
}

func (m *MockTradeService) UpdateTrade(ctx context.Context, userID, tradeID uuid.UUID, req *models.UpdateTradeRequest) (*services.TradeResponse, error) {
	args := m.Called(ctx, userID, tradeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TradeResponse), args.Error(1)
}

func (m *MockTradeService) DeleteTrade(ctx context.Context, userID, tradeID uuid.UUID) error {
	args := m.Called(ctx, userID, tradeID)
	return args.Error(0)
}

func (m *MockTradeService) ToggleFavorite(ctx context.Context, userID, tradeID uuid.UUID) (*services.TradeResponse, error) {
	args := m.Called(ctx, userID, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TradeResponse), args.Error(1)
}

func (m *MockTradeService) QueryTrades(ctx context.Context, userID uuid.UUID, req models.DataTableRequest) ([]*services.TradeResponse, models.PaginationMeta, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(models.PaginationMeta), args.Error(2)
	}
	return args.Get(0).([]*services.TradeResponse), args.Get(1).(models.PaginationMeta), args.Error(2)
}

func (m *MockTradeService) ExportTrades(ctx context.Context, userID uuid.UUID, filters models.TradeFilters, sort []models.SortSpec) ([]*services.TradeResponse, error) {
	args := m.Called(ctx, userID, filters, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*services.TradeResponse), args.Error(1)
}

type TradeHandlerTestSuite struct {
	suite.Suite
	handler     *TradeHandler
	mockService *MockTradeService
	userID      uuid.UUID
}

func (suite *TradeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockTradeService)
	suite.handler = NewTradeHandler(suite.mockService)
	suite.userID = uuid.New()
}

// testContext builds a gin context carrying the authenticated user
func (suite *TradeHandlerTestSuite) testContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *TradeHandlerTestSuite) TestGetTrade_Success() {
	tradeID := uuid.New()
	suite.mockService.On("GetTrade", mock.Anything, suite.userID, tradeID).
		Return(&services.TradeResponse{ID: tradeID, Position: models.PositionLong}, nil)

	c, w := suite.testContext("GET", "/v1/trades/"+tradeID.String(), nil)
	c.Params = []gin.Param{{Key: "id", Value: tradeID.String()}}

	suite.handler.GetTrade(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TradeHandlerTestSuite) TestGetTrade_NotFoundMapsTo404() {
	tradeID := uuid.New()
	suite.mockService.On("GetTrade", mock.Anything, suite.userID, tradeID).
		Return(nil, repositories.ErrTradeNotFound)

	c, w := suite.testContext("GET", "/v1/trades/"+tradeID.String(), nil)
	c.Params = []gin.Param{{Key: "id", Value: tradeID.String()}}

	suite.handler.GetTrade(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.False(response["success"].(bool))
	errBlock := response["error"].(map[string]interface{})
	suite.Equal("TRADE_NOT_FOUND", errBlock["code"])
}

func (suite *TradeHandlerTestSuite) TestGetTrade_MalformedIDRejected() {
	c, w := suite.testContext("GET", "/v1/trades/not-a-uuid", nil)
	c.Params = []gin.Param{{Key: "id", Value: "not-a-uuid"}}

	suite.handler.GetTrade(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetTrade", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeHandlerTestSuite) TestGetTrade_Unauthenticated() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/v1/trades/"+uuid.NewString(), nil)

	suite.handler.GetTrade(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_ValidationErrorMapsTo400() {
	suite.mockService.On("CreateTrade", mock.Anything, suite.userID, mock.AnythingOfType("*models.CreateTradeRequest")).
		Return(nil, repositories.ErrInvalidInput)

	body, _ := json.Marshal(map[string]interface{}{
		"trade_date":      "2024-03-15T14:00:00Z",
		"order_date":      "2024-03-16T09:00:00Z",
		"trade_type_id":   uuid.NewString(),
		"position":        "long",
		"entry_type_ids":  []string{uuid.NewString()},
		"stop_loss_ticks": 20,
		"target_r":        3,
		"actual_exit_r":   1.5,
		"leverage":        10,
		"profit_loss":     150,
	})
	c, w := suite.testContext("POST", "/v1/trades", body)

	suite.handler.CreateTrade(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errBlock := response["error"].(map[string]interface{})
	suite.Equal("VALIDATION_ERROR", errBlock["code"])
}

func (suite *TradeHandlerTestSuite) TestQueryTrades_ReturnsMetaBlock() {
	suite.mockService.On("QueryTrades", mock.Anything, suite.userID, mock.AnythingOfType("models.DataTableRequest")).
		Return([]*services.TradeResponse{{ID: uuid.New()}}, models.PaginationMeta{
			CurrentPage:  1,
			PageSize:     20,
			TotalRecords: 1,
			TotalPages:   1,
		}, nil)

	body, _ := json.Marshal(map[string]interface{}{})
	c, w := suite.testContext("POST", "/v1/trades/query", body)

	suite.handler.QueryTrades(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	meta := response["meta"].(map[string]interface{})
	suite.Equal(float64(20), meta["pageSize"])
	suite.Equal(float64(1), meta["totalRecords"])
}

func (suite *TradeHandlerTestSuite) TestQueryTrades_InvalidSortMapsTo400() {
	suite.mockService.On("QueryTrades", mock.Anything, suite.userID, mock.AnythingOfType("models.DataTableRequest")).
		Return(nil, models.PaginationMeta{}, repositories.ErrInvalidSortField)

	body, _ := json.Marshal(map[string]interface{}{
		"sort": []map[string]string{{"field": "nope", "direction": "asc"}},
	})
	c, w := suite.testContext("POST", "/v1/trades/query", body)

	suite.handler.QueryTrades(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errBlock := response["error"].(map[string]interface{})
	suite.Equal("INVALID_SORT_FIELD", errBlock["code"])
}

func (suite *TradeHandlerTestSuite) TestDeleteTrade_Success() {
	tradeID := uuid.New()
	suite.mockService.On("DeleteTrade", mock.Anything, suite.userID, tradeID).Return(nil)

	c, w := suite.testContext("DELETE", "/v1/trades/"+tradeID.String(), nil)
	c.Params = []gin.Param{{Key: "id", Value: tradeID.String()}}

	suite.handler.DeleteTrade(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestTradeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TradeHandlerTestSuite))
}
