package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/shared"
)

// ProductService handles catalog product management
type ProductService struct {
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, movementRepo inventory.StockMovementRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// Create adds a product. SKU must be unique; a non-zero initial stock
// is recorded with a STOCK_IN movement.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("SKU_EXISTS", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.CategoryID, req.PurchaseCost, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	product.Barcode = req.Barcode
	product.Description = req.Description
	product.SupplierID = req.SupplierID
	product.WholesalePrice = req.WholesalePrice
	product.Location = req.Location
	if req.LowStockThreshold != nil || req.ReorderPoint != nil {
		low := product.LowStockThreshold
		reorder := product.ReorderPoint
		if req.LowStockThreshold != nil {
			low = *req.LowStockThreshold
		}
		if req.ReorderPoint != nil {
			reorder = *req.ReorderPoint
		}
		if err := product.UpdateStockControls(low, reorder); err != nil {
			return nil, err
		}
	}
	product.UpdateExpiry(req.HasExpiry, req.ExpiryDate)
	if err := product.UpdateTaxRate(req.TaxRate); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial stock cannot be negative")
	}
	product.StockQuantity = req.InitialStock

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if req.InitialStock > 0 {
		movement, err := inventory.NewStockMovement(product.ID, inventory.MovementStockIn, req.InitialStock, product.SKU, "Initial stock")
		if err != nil {
			return nil, err
		}
		if err := s.movementRepo.Save(ctx, movement); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Product created",
		zap.String("sku", product.SKU),
		zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update amends a product's details, pricing and flags. Stock quantity
// is not editable here; it only moves through sales, returns, purchase
// orders and stock counts.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Description, req.CategoryID, req.SupplierID, req.Barcode, req.Location); err != nil {
		return nil, err
	}
	if err := product.UpdatePricing(req.PurchaseCost, req.SellingPrice, req.WholesalePrice); err != nil {
		return nil, err
	}
	if req.LowStockThreshold != nil || req.ReorderPoint != nil {
		low := product.LowStockThreshold
		reorder := product.ReorderPoint
		if req.LowStockThreshold != nil {
			low = *req.LowStockThreshold
		}
		if req.ReorderPoint != nil {
			reorder = *req.ReorderPoint
		}
		if err := product.UpdateStockControls(low, reorder); err != nil {
			return nil, err
		}
	}
	product.UpdateExpiry(req.HasExpiry, req.ExpiryDate)
	if err := product.UpdateTaxRate(req.TaxRate); err != nil {
		return nil, err
	}
	if req.IsFaulty != nil {
		if *req.IsFaulty {
			product.MarkFaulty()
		} else {
			product.ClearFaulty()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	var products []catalog.Product
	var err error
	if filter.LowStock {
		products, err = s.productRepo.FindLowStock(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]ProductResponse, 0, len(products))
		for i := range products {
			responses = append(responses, ToProductResponse(&products[i]))
		}
		pageSize := len(responses)
		if pageSize == 0 {
			pageSize = 1
		}
		result := shared.NewPaginated(responses, int64(len(responses)), 1, pageSize)
		return &result, nil
	}

	products, err = s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Search finds products by name, SKU or barcode fragment
func (s *ProductService) Search(ctx context.Context, query string) ([]ProductResponse, error) {
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Returnable lists the products eligible for return processing, used
// when picking a replacement item.
func (s *ProductService) Returnable(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindReturnable(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Delete removes a product. Products referenced by historical sales
// cannot be deleted; flag them faulty or zero their stock instead.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	referenced, err := s.productRepo.IsReferencedBySales(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrProductReferenced
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
