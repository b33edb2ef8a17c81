package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketscan/internal/domain"
	"ticketscan/internal/handler"
	"ticketscan/internal/licenseexport"
	"ticketscan/internal/service"
	"ticketscan/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestLicenseHandler_Generate_Success(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)

	created := []domain.License{{Code: "AB12CD34", DurationDays: 30, CreatedAt: time.Now()}}
	mockSvc.On("Generate", mock.Anything, service.GenerateLicensesInput{Count: 1, DurationDays: 30}).Return(created, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/admin/generate", map[string]int{"count": 1, "durationDays": 30})
	h.Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestLicenseHandler_Generate_MissingFields(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/api/admin/generate", map[string]int{"count": 5})
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestLicenseHandler_Generate_TooLarge(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	mockSvc.On("Generate", mock.Anything, mock.Anything).Return(nil, domain.ErrBatchTooLarge)

	w, c := jsonRequest(t, http.MethodPost, "/api/admin/generate", map[string]int{"count": 9999, "durationDays": 1})
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BATCH_TOO_LARGE")
}

func TestLicenseHandler_Validate(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	expires := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mockSvc.On("Activate", mock.Anything, service.ActivateInput{Code: "AB12CD34", DeviceID: "dev-1"}).
		Return(&service.ActivationResult{Success: true, Message: "code activated", ExpiresAt: &expires}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/validate", map[string]string{"code": "AB12CD34", "deviceId": "dev-1"})
	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "2025-01-01T00:00:00Z", resp["expiresAt"])
}

func TestLicenseHandler_Validate_Rejected(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	mockSvc.On("Activate", mock.Anything, mock.Anything).
		Return(&service.ActivationResult{Success: false, Message: "license code expired"}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/validate", map[string]string{"code": "AB12CD34", "deviceId": "dev-1"})
	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.NotContains(t, resp, "expiresAt")
}

func TestLicenseHandler_Validate_Unknown(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	mockSvc.On("Activate", mock.Anything, mock.Anything).Return(nil, domain.ErrLicenseNotFound)

	w, c := jsonRequest(t, http.MethodPost, "/api/validate", map[string]string{"code": "NOPE", "deviceId": "dev-1"})
	h.Validate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "LICENSE_NOT_FOUND")
}

func TestLicenseHandler_Validate_MissingDevice(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)

	w, c := jsonRequest(t, http.MethodPost, "/api/validate", map[string]string{"code": "AB12CD34"})
	h.Validate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLicenseHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	views := []domain.LicenseView{{License: domain.License{Code: "A"}, Status: domain.LicenseStatusActive}}
	mockSvc.On("List", mock.Anything, 10, 20).Return(views, 11, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/admin/licenses?offset=10&limit=500", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}

func TestLicenseHandler_List_Error(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	mockSvc.On("List", mock.Anything, 0, 20).Return(nil, 0, errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/admin/licenses", http.NoBody)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestLicenseHandler_Export(t *testing.T) {
	mockSvc := new(mocks.MockLicenseService)
	h := handler.NewLicenseHandler(mockSvc)
	mockSvc.On("Export", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "xlsx-bytes")
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/admin/licenses/export", http.NoBody)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, licenseexport.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "licenses_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}
