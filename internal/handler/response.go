package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketscan/internal/domain"
	"ticketscan/internal/generation"
	"ticketscan/internal/middleware"
)

// APIResponse is the standard envelope for admin API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and generation errors to HTTP status codes
// and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rlErr *generation.RateLimitError
	var extErr *generation.ExternalServiceError
	switch {
	case errors.Is(err, domain.ErrLicenseNotFound):
		return http.StatusNotFound, "LICENSE_NOT_FOUND", "license code not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrAdminNotConfigured):
		return http.StatusServiceUnavailable, "ADMIN_NOT_CONFIGURED", "admin access is not configured"
	case errors.Is(err, domain.ErrInvalidBatch):
		return http.StatusBadRequest, "INVALID_BATCH", "count and durationDays must be positive"
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusBadRequest, "BATCH_TOO_LARGE", "license batch exceeds maximum size"
	case errors.Is(err, domain.ErrDuplicateLicenseCode):
		return http.StatusConflict, "DUPLICATE_LICENSE_CODE", "could not allocate unique license codes"
	case errors.Is(err, domain.ErrInvalidActivation):
		return http.StatusBadRequest, "INVALID_ACTIVATION", "code and deviceId must be non-empty"
	case errors.Is(err, domain.ErrEmptyOCRText):
		return http.StatusBadRequest, "EMPTY_TEXT", "text is required and must be a non-empty string"
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", "text generation is rate limited, retry later"
	case errors.As(err, &extErr):
		return http.StatusBadGateway, "GENERATION_FAILED", "text generation failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.GetLogger(c).Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	var rlErr *generation.RateLimitError
	if errors.As(err, &rlErr) {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
