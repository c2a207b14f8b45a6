package report

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
	"github.com/isms/backend/internal/domain/finance"
	"github.com/isms/backend/internal/domain/purchasing"
	"github.com/isms/backend/internal/domain/returns"
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

// MockReturnRepository is a mock implementation of returns.ReturnRepository
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]returns.Return, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.Return), args.Error(1)
}

func (m *MockReturnRepository) Save(ctx context.Context, ret *returns.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*returns.Return, error) {
	args := m.Called(ctx, returnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status returns.ItemStatus) (*returns.ReturnItem, error) {
	args := m.Called(ctx, itemID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.ReturnItem), args.Error(1)
}

func (m *MockReturnRepository) FindItemsSince(ctx context.Context, since *time.Time) ([]returns.ReturnItem, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.ReturnItem), args.Error(1)
}

// MockPurchaseOrderRepository is a mock implementation of purchasing.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchasing.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*purchasing.PurchaseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindReceivedSince(ctx context.Context, since *time.Time) ([]purchasing.PurchaseOrder, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchasing.PurchaseOrder), args.Error(1)
}

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindFiltered(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumFiltered(ctx context.Context, filter finance.ExpenseFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) FindSince(ctx context.Context, since *time.Time) ([]finance.Expense, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
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

type reportFixture struct {
	saleRepo    *MockSaleRepository
	returnRepo  *MockReturnRepository
	orderRepo   *MockPurchaseOrderRepository
	expenseRepo *MockExpenseRepository
	productRepo *MockProductRepository
	service     *ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		saleRepo:    new(MockSaleRepository),
		returnRepo:  new(MockReturnRepository),
		orderRepo:   new(MockPurchaseOrderRepository),
		expenseRepo: new(MockExpenseRepository),
		productRepo: new(MockProductRepository),
	}
	f.service = NewReportService(f.saleRepo, f.returnRepo, f.orderRepo, f.expenseRepo, f.productRepo, zap.NewNop())
	return f
}

func testProduct(t *testing.T, name string, cost, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "SKU-"+name, uuid.New(),
		decimal.NewFromInt(cost), decimal.NewFromInt(price))
	require.NoError(t, err)
	product.StockQuantity = stock
	return product
}

func saleWithLine(t *testing.T, product *catalog.Product, qty int) sales.Sale {
	t.Helper()
	sale, err := sales.NewSale("RCP-1", uuid.New(), sales.SaleTypeRetail)
	require.NoError(t, err)
	_, err = sale.AddLine(product.ID, product.Name, qty, product.SellingPrice, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, sale.FinalizePayment(sales.PaymentCash, sale.Subtotal, "", ""))
	return *sale
}

func TestReportService_ProfitLoss(t *testing.T) {
	ctx := context.Background()

	t.Run("nets sales, expenses and returns into one figure", func(t *testing.T) {
		f := newReportFixture()

		product := testProduct(t, "Radio", 6000, 10000, 5)
		sale := saleWithLine(t, product, 2)

		expense, err := finance.NewExpense("Rent", decimal.NewFromInt(3000), "August rent", "admin", time.Now())
		require.NoError(t, err)

		refundItem := returns.ReturnItem{
			ID:           uuid.New(),
			ProductID:    product.ID,
			Quantity:     1,
			Status:       returns.ItemStatusResellable,
			AwardedType:  returns.AwardRefund,
			RefundAmount: decimal.NewFromInt(2000),
		}
		businessDiff := returns.ReturnItem{
			ID:               uuid.New(),
			ProductID:        product.ID,
			Quantity:         1,
			Status:           returns.ItemStatusResellable,
			AwardedType:      returns.AwardReplacement,
			PriceDifference:  decimal.NewFromInt(1000),
			DifferencePaidBy: returns.PayerBusiness,
		}
		topUp := returns.ReturnItem{
			ID:               uuid.New(),
			ProductID:        product.ID,
			Quantity:         1,
			Status:           returns.ItemStatusResellable,
			AwardedType:      returns.AwardReplacement,
			PriceDifference:  decimal.NewFromInt(500),
			DifferencePaidBy: returns.PayerClient,
		}

		f.productRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		f.saleRepo.On("FindSince", ctx, mock.Anything).Return([]sales.Sale{sale}, nil)
		f.orderRepo.On("FindReceivedSince", ctx, mock.Anything).Return([]purchasing.PurchaseOrder{}, nil)
		f.expenseRepo.On("FindSince", ctx, mock.Anything).Return([]finance.Expense{*expense}, nil)
		f.returnRepo.On("FindItemsSince", ctx, mock.Anything).
			Return([]returns.ReturnItem{refundItem, businessDiff, topUp}, nil)

		report, err := f.service.ProfitLoss(ctx, PeriodThirtyDays)
		require.NoError(t, err)

		assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(20000)))
		assert.True(t, report.TotalCost.Equal(decimal.NewFromInt(12000)))
		assert.True(t, report.TotalProfit.Equal(decimal.NewFromInt(8000)))
		assert.True(t, report.TotalExpenses.Equal(decimal.NewFromInt(3000)))
		assert.True(t, report.RefundsGiven.Equal(decimal.NewFromInt(2000)))
		assert.True(t, report.BusinessPaidDifferences.Equal(decimal.NewFromInt(1000)))
		assert.True(t, report.TopUpReceived.Equal(decimal.NewFromInt(500)))
		assert.True(t, report.TotalReturnLoss.Equal(decimal.NewFromInt(3000)))
		assert.True(t, report.TotalReturnProfit.Equal(decimal.NewFromInt(500)))
		// 8000 - 3000 - 3000 + 500
		assert.True(t, report.NetProfit.Equal(decimal.NewFromInt(2500)),
			"net profit was %s", report.NetProfit)

		require.Len(t, report.ProductBreakdown, 1)
		assert.Equal(t, 2, report.ProductBreakdown[0].QuantitySold)
		require.Len(t, report.ReturnBreakdown, 5)
	})

	t.Run("purchase spend is informational only", func(t *testing.T) {
		f := newReportFixture()

		order, err := purchasing.NewPurchaseOrder("PO1", uuid.New(), "admin")
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), 10, decimal.NewFromInt(5000))
		require.NoError(t, err)

		f.productRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Product{}, nil)
		f.saleRepo.On("FindSince", ctx, mock.Anything).Return([]sales.Sale{}, nil)
		f.orderRepo.On("FindReceivedSince", ctx, mock.Anything).
			Return([]purchasing.PurchaseOrder{*order}, nil)
		f.expenseRepo.On("FindSince", ctx, mock.Anything).Return([]finance.Expense{}, nil)
		f.returnRepo.On("FindItemsSince", ctx, mock.Anything).Return([]returns.ReturnItem{}, nil)

		report, err := f.service.ProfitLoss(ctx, PeriodAll)
		require.NoError(t, err)
		assert.True(t, report.TotalPurchaseCost.Equal(decimal.NewFromInt(50000)))
		assert.True(t, report.NetProfit.Equal(decimal.Zero))
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		f := newReportFixture()
		_, err := f.service.ProfitLoss(ctx, Period("fortnight"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
	})
}

func TestReportService_SalesReport(t *testing.T) {
	ctx := context.Background()

	f := newReportFixture()
	product := testProduct(t, "Lamp", 3000, 5000, 10)
	sale := saleWithLine(t, product, 3)

	f.productRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
	f.saleRepo.On("FindSince", ctx, mock.Anything).Return([]sales.Sale{sale}, nil)

	report, err := f.service.SalesReport(ctx, PeriodSevenDays, nil, nil)
	require.NoError(t, err)

	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(15000)))
	assert.True(t, report.TotalProfit.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, 3, report.ItemsSold)
	assert.Equal(t, 1, report.SaleCount)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), report.Daily[0].Date)
}

func TestReportService_ReturnsReport(t *testing.T) {
	ctx := context.Background()

	f := newReportFixture()
	items := []returns.ReturnItem{
		{ID: uuid.New(), Status: returns.ItemStatusResellable, RefundAmount: decimal.NewFromInt(4000)},
		{ID: uuid.New(), Status: returns.ItemStatusFaulty, RefundAmount: decimal.NewFromInt(2500)},
		{ID: uuid.New(), Status: returns.ItemStatusDiscarded, RefundAmount: decimal.NewFromInt(1500)},
	}
	f.returnRepo.On("FindItemsSince", ctx, mock.Anything).Return(items, nil)

	report, err := f.service.ReturnsReport(ctx, PeriodThirtyDays)
	require.NoError(t, err)

	assert.Equal(t, 3, report.ItemCount)
	assert.True(t, report.TotalRefunds.Equal(decimal.NewFromInt(8000)))
	assert.True(t, report.FaultyLoss.Equal(decimal.NewFromInt(4000)))
}

func TestReportService_InventoryReport(t *testing.T) {
	ctx := context.Background()

	f := newReportFixture()
	lamp := testProduct(t, "Lamp", 3000, 5000, 10)
	radio := testProduct(t, "Radio", 6000, 10000, 2)
	f.productRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Product{*lamp, *radio}, nil)

	report, err := f.service.InventoryReport(ctx)
	require.NoError(t, err)

	assert.True(t, report.TotalRetailValue.Equal(decimal.NewFromInt(70000)))
	assert.True(t, report.TotalCostValue.Equal(decimal.NewFromInt(42000)))
	assert.True(t, report.TotalPotentialProfit.Equal(decimal.NewFromInt(28000)))
	require.Len(t, report.Products, 2)
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()

	f := newReportFixture()
	lamp := testProduct(t, "Lamp", 3000, 5000, 3) // at or below default threshold
	radio := testProduct(t, "Radio", 6000, 10000, 50)
	broken := testProduct(t, "Broken", 1000, 2000, 1)
	broken.MarkFaulty()

	sale := saleWithLine(t, radio, 4)

	f.productRepo.On("FindAll", ctx, mock.Anything).
		Return([]catalog.Product{*lamp, *radio, *broken}, nil)
	f.saleRepo.On("FindSince", ctx, mock.Anything).Return([]sales.Sale{sale}, nil)

	dashboard, err := f.service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.ActiveProducts)
	assert.Equal(t, 2, dashboard.LowStockCount) // lamp at 3 and broken at 1
	assert.True(t, dashboard.TodayRevenue.Equal(decimal.NewFromInt(40000)))
	assert.True(t, dashboard.TodayProfit.Equal(decimal.NewFromInt(16000)))
	require.NotEmpty(t, dashboard.FastMovers)
	assert.Equal(t, "Radio", dashboard.FastMovers[0].ProductName)
}
