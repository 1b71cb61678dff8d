package api

import (
	"time"

	"tradebook-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Success  bool             `json:"success"`
	Data     interface{}      `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success  bool             `json:"success"`
	Error    ErrorDetail      `json:"error"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ResponseMetadata represents response metadata
type ResponseMetadata struct {
	Timestamp string `json:"timestamp"`
	TraceID   string `json:"trace_id,omitempty"`
}

// DataTableResponse is the paginated table payload: the page of rows plus
// the pagination meta block
type DataTableResponse struct {
	Success  bool                  `json:"success"`
	Data     interface{}           `json:"data"`
	Meta     models.PaginationMeta `json:"meta"`
	Metadata ResponseMetadata      `json:"metadata"`
}

// CreateSuccessResponse creates a success response
func CreateSuccessResponse(data interface{}, traceID string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TraceID:   traceID,
		},
	}
}

// CreateErrorResponse creates an error response
func CreateErrorResponse(code, message, details, traceID string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TraceID:   traceID,
		},
	}
}

// CreateDataTableResponse creates a paginated table response
func CreateDataTableResponse(data interface{}, meta models.PaginationMeta, traceID string) DataTableResponse {
	return DataTableResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
		Metadata: ResponseMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TraceID:   traceID,
		},
	}
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// getTraceID extracts the request ID set by the middleware
func getTraceID(c *gin.Context) string {
	if traceID, exists := c.Get("request_id"); exists {
		if id, ok := traceID.(string); ok {
			return id
		}
	}
	return ""
}
