package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog.
// Stock quantity is only mutated through the stock ledger so every
// change leaves a movement record behind.
type Product struct {
	shared.BaseEntity
	Name              string `gorm:"not null"`
	SKU               string `gorm:"uniqueIndex;not null"`
	Barcode           *string
	Description       string
	CategoryID        uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierID        *uuid.UUID `gorm:"type:uuid;index"`
	PurchaseCost      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WholesalePrice    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	StockQuantity     int `gorm:"not null;default:0"`
	LowStockThreshold int `gorm:"not null;default:10"`
	ReorderPoint      int `gorm:"not null;default:20"`
	IsFaulty          bool `gorm:"not null;default:false"`
	HasExpiry         bool `gorm:"not null;default:false"`
	ExpiryDate        *time.Time
	TaxRate           decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Location          *string
}

// NewProduct creates a new catalog product
func NewProduct(name, sku string, categoryID uuid.UUID, purchaseCost, sellingPrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if purchaseCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Purchase cost cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	return &Product{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		SKU:               sku,
		CategoryID:        categoryID,
		PurchaseCost:      purchaseCost,
		SellingPrice:      sellingPrice,
		LowStockThreshold: 10,
		ReorderPoint:      20,
		TaxRate:           decimal.Zero,
	}, nil
}

// UnitPrice resolves the price a sale line should use. Wholesale sales
// fall back to the retail price when no wholesale price is set.
func (p *Product) UnitPrice(wholesale bool) decimal.Decimal {
	if wholesale && p.WholesalePrice != nil {
		return *p.WholesalePrice
	}
	return p.SellingPrice
}

// UpdatePricing updates cost and price fields
func (p *Product) UpdatePricing(purchaseCost, sellingPrice decimal.Decimal, wholesalePrice *decimal.Decimal) error {
	if purchaseCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Purchase cost cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if wholesalePrice != nil && wholesalePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Wholesale price cannot be negative")
	}
	p.PurchaseCost = purchaseCost
	p.SellingPrice = sellingPrice
	p.WholesalePrice = wholesalePrice
	p.Touch()
	return nil
}

// UpdateDetails updates descriptive fields
func (p *Product) UpdateDetails(name, description string, categoryID uuid.UUID, supplierID *uuid.UUID, barcode, location *string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.CategoryID = categoryID
	p.SupplierID = supplierID
	p.Barcode = barcode
	p.Location = location
	p.Touch()
	return nil
}

// UpdateStockControls updates reorder thresholds
func (p *Product) UpdateStockControls(lowStockThreshold, reorderPoint int) error {
	if lowStockThreshold < 0 || reorderPoint < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}
	p.LowStockThreshold = lowStockThreshold
	p.ReorderPoint = reorderPoint
	p.Touch()
	return nil
}

// UpdateExpiry updates expiry tracking
func (p *Product) UpdateExpiry(hasExpiry bool, expiryDate *time.Time) {
	p.HasExpiry = hasExpiry
	if hasExpiry {
		p.ExpiryDate = expiryDate
	} else {
		p.ExpiryDate = nil
	}
	p.Touch()
}

// UpdateTaxRate updates the flat tax percentage
func (p *Product) UpdateTaxRate(taxRate decimal.Decimal) error {
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	p.TaxRate = taxRate
	p.Touch()
	return nil
}

// MarkFaulty flags the product as faulty. Faulty units stay counted in
// stockQuantity; reporting filters them out of active stock.
func (p *Product) MarkFaulty() {
	p.IsFaulty = true
	p.Touch()
}

// ClearFaulty removes the faulty flag
func (p *Product) ClearFaulty() {
	p.IsFaulty = false
	p.Touch()
}

// IsLowStock reports whether the product is at or below its low stock threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}
