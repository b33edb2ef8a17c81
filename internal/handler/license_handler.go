package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticketscan/internal/licenseexport"
	"ticketscan/internal/service"
)

// LicenseHandler handles license issuance and activation endpoints.
type LicenseHandler struct {
	licenseService service.LicenseService
}

// NewLicenseHandler creates a new LicenseHandler.
func NewLicenseHandler(licenseService service.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

// Generate handles POST /api/admin/generate
// @Summary Generate license codes
// @Description Create a batch of unused license codes (admin only)
// @Tags licenses
// @Accept json
// @Produce json
// @Param request body GenerateLicensesRequest true "Batch size and validity"
// @Success 201 {object} Response{data=[]domain.License} "Licenses created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /admin/generate [post]
func (h *LicenseHandler) Generate(c *gin.Context) {
	var input service.GenerateLicensesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "count and durationDays are required")
		return
	}

	licenses, err := h.licenseService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, licenses)
}

// Validate handles POST /api/validate
// @Summary Activate a license on a device
// @Description Binds an unused code to the device, or confirms the device already holds it
// @Tags licenses
// @Accept json
// @Produce json
// @Param request body ValidateLicenseRequest true "Code and device"
// @Success 200 {object} service.ActivationResult "Activation outcome"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Unknown code"
// @Router /validate [post]
func (h *LicenseHandler) Validate(c *gin.Context) {
	var input service.ActivateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "code and deviceId are required")
		return
	}

	result, err := h.licenseService.Activate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// List handles GET /api/admin/licenses
// @Summary List licenses
// @Description List licenses with their expiry and derived status (admin only)
// @Tags licenses
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.LicenseView,meta=PagMeta} "List of licenses"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /admin/licenses [get]
func (h *LicenseHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	licenses, total, err := h.licenseService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, licenses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/admin/licenses/export
// @Summary Export licenses
// @Description Download every license as an XLSX workbook (admin only)
// @Tags licenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX workbook"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /admin/licenses/export [get]
func (h *LicenseHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.licenseService.Export(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+licenseexport.BuildFilename(time.Now())+`"`)
	c.Data(http.StatusOK, licenseexport.ContentType, buf.Bytes())
}
