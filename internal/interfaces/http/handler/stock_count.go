package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/isms/backend/internal/application/inventory"
	"github.com/isms/backend/internal/interfaces/http/dto"
)

// StockCountHandler handles stock counting sheet endpoints
type StockCountHandler struct {
	BaseHandler
	countService *inventoryapp.StockCountService
}

// NewStockCountHandler creates a new StockCountHandler
func NewStockCountHandler(countService *inventoryapp.StockCountService) *StockCountHandler {
	return &StockCountHandler{countService: countService}
}

// Create opens a counting sheet over the selected products
// POST /api/v1/stock-counts
func (h *StockCountHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.countService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RecordCounts saves counted quantities onto an open sheet
// PUT /api/v1/stock-counts/:id/counts
func (h *StockCountHandler) RecordCounts(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.RecordCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.countService.RecordCounts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Complete closes the sheet and applies variances to stock
// POST /api/v1/stock-counts/:id/complete
func (h *StockCountHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.countService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel abandons an open sheet without touching stock
// POST /api/v1/stock-counts/:id/cancel
func (h *StockCountHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.countService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns a single counting sheet with its lines
// GET /api/v1/stock-counts/:id
func (h *StockCountHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.countService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns paginated counting sheets
// GET /api/v1/stock-counts
func (h *StockCountHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	page, err := h.countService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
