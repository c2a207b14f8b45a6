package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/catalog"
)

// CreateProductRequest adds a product to the catalog. A non-zero
// initial stock is credited through the stock ledger.
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	SKU               string           `json:"sku" binding:"required,min=1,max=50"`
	Barcode           *string          `json:"barcode"`
	Description       string           `json:"description"`
	CategoryID        uuid.UUID        `json:"category_id" binding:"required"`
	SupplierID        *uuid.UUID       `json:"supplier_id"`
	PurchaseCost      decimal.Decimal  `json:"purchase_cost"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price"`
	InitialStock      int              `json:"initial_stock" binding:"min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	ReorderPoint      *int             `json:"reorder_point"`
	HasExpiry         bool             `json:"has_expiry"`
	ExpiryDate        *time.Time       `json:"expiry_date"`
	TaxRate           decimal.Decimal  `json:"tax_rate"`
	Location          *string          `json:"location"`
}

// UpdateProductRequest amends a product's details and pricing
type UpdateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Barcode        *string          `json:"barcode"`
	Description    string           `json:"description"`
	CategoryID     uuid.UUID        `json:"category_id" binding:"required"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	PurchaseCost   decimal.Decimal  `json:"purchase_cost"`
	SellingPrice   decimal.Decimal  `json:"selling_price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	LowStockThreshold *int          `json:"low_stock_threshold"`
	ReorderPoint      *int          `json:"reorder_point"`
	HasExpiry      bool             `json:"has_expiry"`
	ExpiryDate     *time.Time       `json:"expiry_date"`
	TaxRate        decimal.Decimal  `json:"tax_rate"`
	Location       *string          `json:"location"`
	IsFaulty       *bool            `json:"is_faulty"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	LowStock   bool       `form:"low_stock"`
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku"`
	Barcode           *string          `json:"barcode,omitempty"`
	Description       string           `json:"description"`
	CategoryID        uuid.UUID        `json:"category_id"`
	SupplierID        *uuid.UUID       `json:"supplier_id,omitempty"`
	PurchaseCost      decimal.Decimal  `json:"purchase_cost"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price,omitempty"`
	StockQuantity     int              `json:"stock_quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	ReorderPoint      int              `json:"reorder_point"`
	IsLowStock        bool             `json:"is_low_stock"`
	IsFaulty          bool             `json:"is_faulty"`
	HasExpiry         bool             `json:"has_expiry"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	TaxRate           decimal.Decimal  `json:"tax_rate"`
	Location          *string          `json:"location,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CreateCategoryRequest adds a product category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse represents a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierRequest creates or updates a supplier
type SupplierRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

// SupplierResponse represents a supplier
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToProductResponse maps a product to its response shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		SupplierID:        p.SupplierID,
		PurchaseCost:      p.PurchaseCost,
		SellingPrice:      p.SellingPrice,
		WholesalePrice:    p.WholesalePrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		ReorderPoint:      p.ReorderPoint,
		IsLowStock:        p.IsLowStock(),
		IsFaulty:          p.IsFaulty,
		HasExpiry:         p.HasExpiry,
		ExpiryDate:        p.ExpiryDate,
		TaxRate:           p.TaxRate,
		Location:          p.Location,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToCategoryResponse maps a category to its response shape
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToSupplierResponse maps a supplier to its response shape
func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}
