package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/isms/backend/internal/application/sales"
)

// SaleHandler handles point of sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create rings up a sale for the authenticated cashier
// POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	cashierID, err := authenticatedUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user identity")
		return
	}

	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.saleService.Create(c.Request.Context(), cashierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns a paginated sale history
// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single sale with its lines
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByReceipt looks up a sale by its receipt number
// GET /api/v1/sales/receipt/:number
func (h *SaleHandler) GetByReceipt(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Receipt number is required")
		return
	}

	resp, err := h.saleService.GetByReceiptNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListInstallments returns all installment sales with outstanding state
// GET /api/v1/installments
func (h *SaleHandler) ListInstallments(c *gin.Context) {
	resp, err := h.saleService.ListInstallments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordPayment applies a payment to an installment sale
// POST /api/v1/installments/:id/payments
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req salesapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.saleService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PaymentHistory returns the payment ledger of an installment sale
// GET /api/v1/installments/:id/payments
func (h *SaleHandler) PaymentHistory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.saleService.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
