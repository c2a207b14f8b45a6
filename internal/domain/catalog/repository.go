package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	FindReturnable(ctx context.Context) ([]Product, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	// AdjustStock applies a relational stock delta (stock = stock + delta).
	// Negative deltas fail with ErrInsufficientStock when the row would go
	// below zero.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error
	// IsReferencedBySales reports whether any historical sale line points at
	// the product.
	IsReferencedBySales(ctx context.Context, productID uuid.UUID) (bool, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindByName(ctx context.Context, name string) (*Category, error)
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
}
