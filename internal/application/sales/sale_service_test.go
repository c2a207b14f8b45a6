package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/sales"
	"github.com/isms/backend/internal/domain/shared"
)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindRecent(ctx context.Context, limit int) ([]sales.Sale, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindInstallmentSales(ctx context.Context) ([]sales.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSince(ctx context.Context, since *time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

// MockInstallmentPaymentRepository is a mock implementation of sales.InstallmentPaymentRepository
type MockInstallmentPaymentRepository struct {
	mock.Mock
}

func (m *MockInstallmentPaymentRepository) Save(ctx context.Context, payment *sales.InstallmentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockInstallmentPaymentRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.InstallmentPayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.InstallmentPayment), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindReturnable(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func (m *MockProductRepository) IsReferencedBySales(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

type serviceFixture struct {
	service      *SaleService
	saleRepo     *MockSaleRepository
	paymentRepo  *MockInstallmentPaymentRepository
	productRepo  *MockProductRepository
	movementRepo *MockStockMovementRepository
}

func newFixture() *serviceFixture {
	saleRepo := new(MockSaleRepository)
	paymentRepo := new(MockInstallmentPaymentRepository)
	productRepo := new(MockProductRepository)
	movementRepo := new(MockStockMovementRepository)
	scope := NewNoOpTransactionScope(saleRepo, paymentRepo, productRepo, movementRepo)
	return &serviceFixture{
		service:      NewSaleService(scope, saleRepo, paymentRepo, zap.NewNop()),
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

func stockedProduct(t *testing.T, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Phone Charger", "CHG-001", uuid.New(), decimal.NewFromInt(price/2), decimal.NewFromInt(price))
	require.NoError(t, err)
	p.StockQuantity = stock
	return p
}

func TestCreate_CashSaleDecrementsStockAndWritesMovement(t *testing.T) {
	f := newFixture()
	product := stockedProduct(t, 10000, 5)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.productRepo.On("AdjustStock", mock.Anything, product.ID, -2).Return(nil)
	f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
		return mv.Type == inventory.MovementStockOut && mv.Quantity == 2 && mv.ProductID == product.ID
	})).Return(nil)

	resp, err := f.service.Create(context.Background(), uuid.New(), CreateSaleRequest{
		Items:         []SaleLineInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: sales.PaymentCash,
		AmountPaid:    decimal.NewFromInt(20000),
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(20000)))
	assert.True(t, resp.ChangeGiven.IsZero())
	assert.False(t, resp.IsInstallment)
	f.productRepo.AssertExpectations(t)
	f.movementRepo.AssertExpectations(t)
	f.saleRepo.AssertExpectations(t)
}

func TestCreate_RejectsWhenStockShort(t *testing.T) {
	f := newFixture()
	product := stockedProduct(t, 10000, 1)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := f.service.Create(context.Background(), uuid.New(), CreateSaleRequest{
		Items:         []SaleLineInput{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: sales.PaymentCash,
		AmountPaid:    decimal.NewFromInt(20000),
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_CreditSaleOpensInstallmentSchedule(t *testing.T) {
	f := newFixture()
	product := stockedProduct(t, 50000, 3)

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.productRepo.On("AdjustStock", mock.Anything, product.ID, -1).Return(nil)
	f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	resp, err := f.service.Create(context.Background(), uuid.New(), CreateSaleRequest{
		Items:         []SaleLineInput{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: sales.PaymentCredit,
		AmountPaid:    decimal.NewFromInt(10000),
		CustomerName:  "Juma",
		CustomerPhone: "+255700000001",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsInstallment)
	require.NotNil(t, resp.InstallmentDue)
	assert.True(t, resp.InstallmentDue.Equal(decimal.NewFromInt(40000)))
	require.NotNil(t, resp.NextPaymentDate)
	// stock still moved at sale time
	f.productRepo.AssertCalled(t, "AdjustStock", mock.Anything, product.ID, -1)
}

func TestCreate_WholesalePricing(t *testing.T) {
	f := newFixture()
	product := stockedProduct(t, 10000, 10)
	wholesale := decimal.NewFromInt(8000)
	require.NoError(t, product.UpdatePricing(product.PurchaseCost, product.SellingPrice, &wholesale))

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.productRepo.On("AdjustStock", mock.Anything, product.ID, -3).Return(nil)
	f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	resp, err := f.service.Create(context.Background(), uuid.New(), CreateSaleRequest{
		Items:         []SaleLineInput{{ProductID: product.ID, Quantity: 3}},
		SaleType:      sales.SaleTypeWholesale,
		PaymentMethod: sales.PaymentCash,
		AmountPaid:    decimal.NewFromInt(24000),
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(24000)))
}

func TestRecordPayment_UpdatesSaleAndAppendsLedger(t *testing.T) {
	f := newFixture()

	sale, err := sales.NewSale("RCP-TEST-0001", uuid.New(), sales.SaleTypeRetail)
	require.NoError(t, err)
	_, err = sale.AddLine(uuid.New(), "Radio", 1, decimal.NewFromInt(50000), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.FinalizePayment(sales.PaymentCredit, decimal.NewFromInt(10000), "Juma", "+255700000001"))

	f.saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	f.saleRepo.On("Save", mock.Anything, sale).Return(nil)
	f.paymentRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *sales.InstallmentPayment) bool {
		return p.SaleID == sale.ID && p.AmountPaid.Equal(decimal.NewFromInt(15000))
	})).Return(nil)

	resp, err := f.service.RecordPayment(context.Background(), sale.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(15000),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.InstallmentDue)
	assert.True(t, resp.InstallmentDue.Equal(decimal.NewFromInt(25000)))
	f.paymentRepo.AssertExpectations(t)
}

func TestRecordPayment_SettlementLeavesStockAlone(t *testing.T) {
	f := newFixture()

	sale, err := sales.NewSale("RCP-TEST-0003", uuid.New(), sales.SaleTypeRetail)
	require.NoError(t, err)
	_, err = sale.AddLine(uuid.New(), "Radio", 1, decimal.NewFromInt(50000), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.FinalizePayment(sales.PaymentCredit, decimal.NewFromInt(10000), "Juma", "+255700000001"))

	f.saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	f.saleRepo.On("Save", mock.Anything, sale).Return(nil)
	f.paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.InstallmentPayment")).Return(nil)

	resp, err := f.service.RecordPayment(context.Background(), sale.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(40000),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.InstallmentDue)
	assert.True(t, resp.InstallmentDue.IsZero())
	assert.True(t, sale.IsSettled())
	// stock moved at sale time; settling the balance must not move it again
	f.productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	f.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordPayment_RejectsNonInstallmentSale(t *testing.T) {
	f := newFixture()

	sale, err := sales.NewSale("RCP-TEST-0002", uuid.New(), sales.SaleTypeRetail)
	require.NoError(t, err)
	_, err = sale.AddLine(uuid.New(), "Radio", 1, decimal.NewFromInt(5000), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.FinalizePayment(sales.PaymentCash, decimal.NewFromInt(5000), "", ""))

	f.saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

	_, err = f.service.RecordPayment(context.Background(), sale.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(1000),
	})
	assert.Error(t, err)
	f.paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
