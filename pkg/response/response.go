package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/leondli/npsboard/pkg/errors"
)

// Error codes as strings
const (
	CodeSuccess         = "SUCCESS"
	CodeBadRequest      = "BAD_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeNoData          = "NO_DATA"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
)

// RequestIDKey is the key used to store the request ID in the gin context
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID in and out of the service
const RequestIDHeader = "X-Request-ID"

// Response is the standard API response structure for success
type Response struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId"`
}

// ErrorDetail provides additional error information
type ErrorDetail struct {
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ErrorResponse is the standard API response structure for errors
type ErrorResponse struct {
	Code      string        `json:"code"`
	HTTPCode  int           `json:"httpCode"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	RequestID string        `json:"requestId"`
}

// GetRequestID retrieves the request ID from context, or generates a new one
func GetRequestID(c *gin.Context) string {
	// Set by middleware
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	// Sent by the frontend
	if requestID := c.GetHeader(RequestIDHeader); requestID != "" {
		return requestID
	}

	return "req-" + uuid.New().String()
}

// Success sends a success response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:      CodeSuccess,
		Message:   "success",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Created sends a created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:      CodeSuccess,
		Message:   "created",
		Data:      data,
		RequestID: GetRequestID(c),
	})
}

// Error sends an error response with details
func Error(c *gin.Context, httpStatus int, code string, message string, details ...ErrorDetail) {
	c.JSON(httpStatus, ErrorResponse{
		Code:      code,
		HTTPCode:  httpStatus,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c),
	})
}

// ErrorWithReason sends an error response with a reason and optional metadata
func ErrorWithReason(c *gin.Context, httpStatus int, code string, message string, reason string, metadata map[string]string) {
	Error(c, httpStatus, code, message, ErrorDetail{Reason: reason, Metadata: metadata})
}

// BadRequest sends a bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// NotFound sends a not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// NoData sends an unprocessable entity response for payloads that cannot be shown
func NoData(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, CodeNoData, message)
}

// InternalError sends an internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternalError, message)
}

// ValidationError sends a validation error response
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeValidationError, message)
}

// HandleError maps an error onto the matching response.
// Unknown errors become a generic internal error.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		InternalError(c, "internal server error")
		return
	}

	switch {
	case apperrors.IsNotFound(appErr):
		NotFound(c, appErr.Message)
	case apperrors.IsInvalidInput(appErr):
		ValidationError(c, appErr.Message)
	case apperrors.IsNoData(appErr):
		NoData(c, appErr.Message)
	default:
		InternalError(c, appErr.Message)
	}
}
