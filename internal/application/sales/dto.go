package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/sales"
)

// SaleLineInput is one cart line in a checkout request. Unit prices are
// resolved from the catalog on the server; the client only names the
// product and quantity.
type SaleLineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest represents a checkout
type CreateSaleRequest struct {
	Items         []SaleLineInput     `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal     `json:"discount"`
	PaymentMethod sales.PaymentMethod `json:"payment_method" binding:"required"`
	SaleType      sales.SaleType      `json:"sale_type"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
}

// RecordPaymentRequest applies a partial payment to a credit sale
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
	Search        string  `form:"search"`
	PaymentMethod *string `form:"payment_method"`
	SaleType      *string `form:"sale_type"`
}

// SaleItemResponse is one line on the receipt
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse represents a completed sale
type SaleResponse struct {
	ID               uuid.UUID           `json:"id"`
	ReceiptNumber    string              `json:"receipt_number"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Discount         decimal.Decimal     `json:"discount"`
	Total            decimal.Decimal     `json:"total"`
	PaymentMethod    sales.PaymentMethod `json:"payment_method"`
	SaleType         sales.SaleType      `json:"sale_type"`
	AmountPaid       decimal.Decimal     `json:"amount_paid"`
	ChangeGiven      decimal.Decimal     `json:"change_given"`
	CustomerName     *string             `json:"customer_name,omitempty"`
	CustomerPhone    *string             `json:"customer_phone,omitempty"`
	IsInstallment    bool                `json:"is_installment"`
	InstallmentTotal *decimal.Decimal    `json:"installment_total,omitempty"`
	InstallmentPaid  *decimal.Decimal    `json:"installment_paid,omitempty"`
	InstallmentDue   *decimal.Decimal    `json:"installment_due,omitempty"`
	NextPaymentDate  *time.Time          `json:"next_payment_date,omitempty"`
	CashierID        uuid.UUID           `json:"cashier_id"`
	Items            []SaleItemResponse  `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
}

// InstallmentPaymentResponse is one ledger entry on a credit sale
type InstallmentPaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	SaleID     uuid.UUID       `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Balance    decimal.Decimal `json:"balance"`
	PaidAt     time.Time       `json:"paid_at"`
	Notes      *string         `json:"notes,omitempty"`
}

// ToSaleResponse maps a sale aggregate to its response shape
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Total:       item.Total,
		})
	}
	return SaleResponse{
		ID:               sale.ID,
		ReceiptNumber:    sale.ReceiptNumber,
		Subtotal:         sale.Subtotal,
		Discount:         sale.Discount,
		Total:            sale.Total,
		PaymentMethod:    sale.PaymentMethod,
		SaleType:         sale.SaleType,
		AmountPaid:       sale.AmountPaid,
		ChangeGiven:      sale.ChangeGiven,
		CustomerName:     sale.CustomerName,
		CustomerPhone:    sale.CustomerPhone,
		IsInstallment:    sale.IsInstallment,
		InstallmentTotal: sale.InstallmentTotal,
		InstallmentPaid:  sale.InstallmentPaid,
		InstallmentDue:   sale.InstallmentDue,
		NextPaymentDate:  sale.NextPaymentDate,
		CashierID:        sale.CashierID,
		Items:            items,
		CreatedAt:        sale.CreatedAt,
	}
}

// ToInstallmentPaymentResponse maps a ledger entry to its response shape
func ToInstallmentPaymentResponse(payment *sales.InstallmentPayment) InstallmentPaymentResponse {
	return InstallmentPaymentResponse{
		ID:         payment.ID,
		SaleID:     payment.SaleID,
		Amount:     payment.Amount,
		AmountPaid: payment.AmountPaid,
		Balance:    payment.Balance,
		PaidAt:     payment.PaidAt,
		Notes:      payment.Notes,
	}
}
