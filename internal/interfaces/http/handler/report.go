package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/isms/backend/internal/application/report"
)

// ReportHandler handles reporting and dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func reportPeriod(c *gin.Context) reportapp.Period {
	raw := c.DefaultQuery("period", string(reportapp.PeriodThirtyDays))
	return reportapp.Period(raw)
}

// ProfitLoss computes the profit and loss statement for a period
// GET /api/v1/profit-loss?period=
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	resp, err := h.reportService.ProfitLoss(c.Request.Context(), reportPeriod(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Sales returns the sales report, optionally narrowed to a category
// or a single product
// GET /api/v1/reports/sales?period=&category_id=&product_id=
func (h *ReportHandler) Sales(c *gin.Context) {
	var categoryID, productID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category_id parameter")
			return
		}
		categoryID = &id
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product_id parameter")
			return
		}
		productID = &id
	}

	resp, err := h.reportService.SalesReport(c.Request.Context(), reportPeriod(c), categoryID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Returns summarizes return activity for a period
// GET /api/v1/reports/returns?period=
func (h *ReportHandler) Returns(c *gin.Context) {
	resp, err := h.reportService.ReturnsReport(c.Request.Context(), reportPeriod(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Inventory values the current stock at cost and at retail
// GET /api/v1/reports/inventory
func (h *ReportHandler) Inventory(c *gin.Context) {
	resp, err := h.reportService.InventoryReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Dashboard returns the storefront overview numbers
// GET /api/v1/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
