package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketscan/internal/domain"
	"ticketscan/internal/service"
)

// EnhanceTextInput is the body of an enhance-text request.
type EnhanceTextInput struct {
	Text string `json:"text"`
}

// CleanupInput is the body of a test-cleanup request.
type CleanupInput struct {
	RawJSON string `json:"rawJson"`
}

// CleanupOutput is the successful test-cleanup body.
type CleanupOutput struct {
	Parsed  *domain.ReceiptRecord `json:"parsed"`
	Cleaned string                `json:"cleaned"`
}

// ReceiptHandler handles the OCR-to-record endpoints used by the mobile app.
// Their bodies are bare records or diagnostics, not the admin envelope.
type ReceiptHandler struct {
	receiptService service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// EnhanceText handles POST /api/enhance-text
// @Summary Structure OCR text
// @Description Ask the language model to restate receipt OCR text as JSON, then repair and validate the reply
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body EnhanceTextRequest true "OCR text"
// @Success 200 {object} domain.ReceiptRecord "Structured receipt"
// @Failure 400 {object} ErrorResponseBody "Empty text"
// @Failure 429 {object} ErrorResponseBody "Generation rate limited"
// @Failure 500 {object} repair.Diagnostic "Reply could not be parsed"
// @Failure 502 {object} ErrorResponseBody "Generation failed"
// @Router /enhance-text [post]
func (h *ReceiptHandler) EnhanceText(c *gin.Context) {
	var input EnhanceTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleError(c, domain.ErrEmptyOCRText)
		return
	}

	res, err := h.receiptService.Enhance(c.Request.Context(), input.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	if diag := res.Diagnostic(); diag != nil {
		c.JSON(http.StatusInternalServerError, diag)
		return
	}

	c.JSON(http.StatusOK, res.Record)
}

// TestCleanup handles POST /api/test-cleanup
// @Summary Repair a model reply
// @Description Run the repair pipeline over a raw reply without calling the model
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body CleanupRequest true "Raw reply"
// @Success 200 {object} CleanupOutput "Parsed record and cleaned text"
// @Failure 400 {object} ErrorResponseBody "rawJson missing"
// @Failure 500 {object} repair.Diagnostic "Reply could not be parsed"
// @Router /test-cleanup [post]
func (h *ReceiptHandler) TestCleanup(c *gin.Context) {
	var input CleanupInput
	if err := c.ShouldBindJSON(&input); err != nil || input.RawJSON == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "rawJson is required and must be a string")
		return
	}

	res := h.receiptService.Cleanup(input.RawJSON)
	if diag := res.Diagnostic(); diag != nil {
		c.JSON(http.StatusInternalServerError, diag)
		return
	}

	c.JSON(http.StatusOK, CleanupOutput{Parsed: res.Record, Cleaned: res.CleanedText})
}
