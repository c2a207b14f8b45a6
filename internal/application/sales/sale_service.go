package sales

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/sales"
	"github.com/isms/backend/internal/domain/shared"
)

// SaleService handles checkout and the installment ledger
type SaleService struct {
	scope       TransactionScope
	saleRepo    sales.SaleRepository
	paymentRepo sales.InstallmentPaymentRepository
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(scope TransactionScope, saleRepo sales.SaleRepository, paymentRepo sales.InstallmentPaymentRepository, logger *zap.Logger) *SaleService {
	return &SaleService{
		scope:       scope,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Create processes a checkout: prices each line from the catalog,
// finalizes payment for the chosen method and, in one transaction,
// persists the sale, decrements stock and writes a STOCK_OUT ledger
// entry per line. Stock moves at sale time for every payment method,
// credit sales included.
func (s *SaleService) Create(ctx context.Context, cashierID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	saleType := req.SaleType
	if saleType == "" {
		saleType = sales.SaleTypeRetail
	}

	sale, err := sales.NewSale(sales.GenerateReceiptNumber(), cashierID, saleType)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		wholesale := saleType == sales.SaleTypeWholesale
		for _, line := range req.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product.StockQuantity < line.Quantity {
				return shared.ErrInsufficientStock
			}
			if _, err := sale.AddLine(product.ID, product.Name, line.Quantity, product.UnitPrice(wholesale), line.Discount); err != nil {
				return err
			}
		}
		sale.ApplyDiscount(req.Discount)
		if err := sale.FinalizePayment(req.PaymentMethod, req.AmountPaid, req.CustomerName, req.CustomerPhone); err != nil {
			return err
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := repos.Products().AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
			movement, err := inventory.NewStockMovement(item.ProductID, inventory.MovementStockOut, item.Quantity, sale.ReceiptNumber, "Sale")
			if err != nil {
				return err
			}
			if err := repos.Movements().Save(ctx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale completed",
		zap.String("receipt_number", sale.ReceiptNumber),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.String("total", sale.Total.String()))

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByReceiptNumber retrieves a sale by its receipt number
func (s *SaleService) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.PaymentMethod != nil {
		domainFilter.Filters["payment_method"] = *filter.PaymentMethod
	}
	if filter.SaleType != nil {
		domainFilter.Filters["sale_type"] = *filter.SaleType
	}

	items, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToSaleResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListInstallments retrieves all credit sales with their outstanding balances
func (s *SaleService) ListInstallments(ctx context.Context) ([]SaleResponse, error) {
	items, err := s.saleRepo.FindInstallmentSales(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToSaleResponse(&items[i]))
	}
	return responses, nil
}

// RecordPayment applies a partial payment against a credit sale. The
// sale balance update and the append-only ledger entry are committed
// together.
func (s *SaleService) RecordPayment(ctx context.Context, saleID uuid.UUID, req RecordPaymentRequest) (*SaleResponse, error) {
	var sale *sales.Sale
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		payment, err := sale.RecordInstallmentPayment(req.Amount, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		return repos.Payments().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Installment payment recorded",
		zap.String("receipt_number", sale.ReceiptNumber),
		zap.String("amount", req.Amount.String()),
		zap.String("remaining_due", sale.OutstandingDue().String()))

	response := ToSaleResponse(sale)
	return &response, nil
}

// PaymentHistory returns the ledger entries for a credit sale
func (s *SaleService) PaymentHistory(ctx context.Context, saleID uuid.UUID) ([]InstallmentPaymentResponse, error) {
	payments, err := s.paymentRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	responses := make([]InstallmentPaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToInstallmentPaymentResponse(&payments[i]))
	}
	return responses, nil
}
