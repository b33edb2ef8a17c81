package handler

import "time"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// GenerateLicensesRequest represents the license batch request body.
type GenerateLicensesRequest struct {
	Count        int `json:"count" binding:"required" example:"50"`
	DurationDays int `json:"durationDays" binding:"required" example:"365"`
}

// ValidateLicenseRequest represents the activation request body.
type ValidateLicenseRequest struct {
	Code     string `json:"code" binding:"required" example:"9F86D081"`
	DeviceID string `json:"deviceId" binding:"required" example:"a1b2c3d4-android"`
}

// AdminLoginRequest represents the admin login request body.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

// EnhanceTextRequest represents the OCR text request body.
type EnhanceTextRequest struct {
	Text string `json:"text" example:"CARREFOUR\n04/25/2024 10:30 PM\nLAIT 2 x 1,05\nTOTAL 27,40"`
}

// CleanupRequest represents the test-cleanup request body.
type CleanupRequest struct {
	RawJSON string `json:"rawJson" example:"{storeName: Walmart, totalPaid: \"12,50\"}"`
}

// --- Response Types ---

// AdminTokenResponse represents the admin session token.
type AdminTokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expiresAt" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
