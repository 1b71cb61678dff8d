package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HealthHandlerTestSuite struct {
	suite.Suite
	healthHandler *HealthHandler
	router        *gin.Engine
}

func (suite *HealthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.healthHandler = NewHealthHandler(nil)

	suite.router = gin.New()
	suite.router.GET("/health/live", suite.healthHandler.LivenessProbe)
	suite.router.GET("/health/ready", suite.healthHandler.ReadinessProbe)
}

func (suite *HealthHandlerTestSuite) TestLivenessProbe_Success() {
	w := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/health/live", nil)
	suite.router.ServeHTTP(w, request)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response SuccessResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response.Success)

	data, ok := response.Data.(map[string]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "alive", data["status"])
	assert.Contains(suite.T(), data, "timestamp")
}

func (suite *HealthHandlerTestSuite) TestReadinessProbe_WithoutDatabase() {
	w := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/health/ready", nil)
	suite.router.ServeHTTP(w, request)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response.Success)
	assert.Equal(suite.T(), "SERVICE_UNAVAILABLE", response.Error.Code)
}

func TestHealthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HealthHandlerTestSuite))
}
