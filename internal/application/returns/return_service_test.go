package returns

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
	"github.com/isms/backend/internal/domain/returns"
	"github.com/isms/backend/internal/domain/shared"
)

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

type fixture struct {
	service      *ReturnService
	returnRepo   *MockReturnRepository
	productRepo  *MockProductRepository
	movementRepo *MockStockMovementRepository
}

func newFixture() *fixture {
	returnRepo := new(MockReturnRepository)
	productRepo := new(MockProductRepository)
	movementRepo := new(MockStockMovementRepository)
	scope := NewNoOpTransactionScope(returnRepo, productRepo, movementRepo)
	return &fixture{
		service:      NewReturnService(scope, returnRepo, zap.NewNop()),
		returnRepo:   returnRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

func product(t *testing.T, name, sku string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, sku, uuid.New(), decimal.NewFromInt(price/2), decimal.NewFromInt(price))
	require.NoError(t, err)
	p.StockQuantity = stock
	return p
}

func TestCreate_ResellableReturnRestocks(t *testing.T) {
	f := newFixture()
	p := product(t, "Kettle", "KTL-001", 30000, 2)

	f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.productRepo.On("AdjustStock", mock.Anything, p.ID, 1).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
		return mv.Type == inventory.MovementReturnResellable && mv.Quantity == 1
	})).Return(nil)
	f.returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)

	resp, err := f.service.Create(context.Background(), CreateReturnRequest{
		Reason: "Unopened box",
		Items: []ReturnItemInput{{
			ProductID:    p.ID,
			Quantity:     1,
			Status:       returns.ItemStatusResellable,
			AwardedType:  returns.AwardRefund,
			RefundAmount: decimal.NewFromInt(30000),
		}},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalRefund.Equal(decimal.NewFromInt(30000)))
	f.productRepo.AssertExpectations(t)
	f.movementRepo.AssertExpectations(t)
}

func TestCreate_FaultyReturnFlagsProductWithoutRestock(t *testing.T) {
	f := newFixture()
	p := product(t, "Kettle", "KTL-001", 30000, 2)

	f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.productRepo.On("Save", mock.Anything, p).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(mv *inventory.StockMovement) bool {
		return mv.Type == inventory.MovementReturnFaulty
	})).Return(nil)
	f.returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)

	_, err := f.service.Create(context.Background(), CreateReturnRequest{
		Items: []ReturnItemInput{{
			ProductID:    p.ID,
			Quantity:     1,
			Status:       returns.ItemStatusFaulty,
			AwardedType:  returns.AwardRefund,
			RefundAmount: decimal.NewFromInt(30000),
		}},
	})
	require.NoError(t, err)

	assert.True(t, p.IsFaulty)
	f.productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_ReplacementShipsAndComputesClientDifference(t *testing.T) {
	f := newFixture()
	original := product(t, "Blender 300W", "BLN-300", 30000, 0)
	replacement := product(t, "Blender 500W", "BLN-500", 45000, 4)

	f.productRepo.On("FindByID", mock.Anything, original.ID).Return(original, nil)
	f.productRepo.On("FindByID", mock.Anything, replacement.ID).Return(replacement, nil)
	f.productRepo.On("Save", mock.Anything, original).Return(nil)
	f.productRepo.On("AdjustStock", mock.Anything, replacement.ID, -1).Return(nil)
	f.movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
	f.returnRepo.On("Save", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)

	resp, err := f.service.Create(context.Background(), CreateReturnRequest{
		Items: []ReturnItemInput{{
			ProductID:            original.ID,
			Quantity:             1,
			Status:               returns.ItemStatusFaulty,
			AwardedType:          returns.AwardReplacement,
			ReplacementProductID: &replacement.ID,
		}},
	})
	require.NoError(t, err)

	item := resp.Items[0]
	assert.True(t, item.PriceDifference.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, returns.PayerClient, item.DifferencePaidBy)
	f.productRepo.AssertCalled(t, "AdjustStock", mock.Anything, replacement.ID, -1)
}

func TestCreate_ReplacementRejectedWhenOutOfStock(t *testing.T) {
	f := newFixture()
	original := product(t, "Blender 300W", "BLN-300", 30000, 0)
	replacement := product(t, "Blender 500W", "BLN-500", 45000, 0)

	f.productRepo.On("FindByID", mock.Anything, original.ID).Return(original, nil)
	f.productRepo.On("FindByID", mock.Anything, replacement.ID).Return(replacement, nil)

	_, err := f.service.Create(context.Background(), CreateReturnRequest{
		Items: []ReturnItemInput{{
			ProductID:            original.ID,
			Quantity:             1,
			AwardedType:          returns.AwardReplacement,
			ReplacementProductID: &replacement.ID,
		}},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	f.returnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAmendItemStatus_NoStockReplay(t *testing.T) {
	f := newFixture()
	itemID := uuid.New()
	item := &returns.ReturnItem{ID: itemID, Status: returns.ItemStatusResellable}

	f.returnRepo.On("UpdateItemStatus", mock.Anything, itemID, returns.ItemStatusResellable).Return(item, nil)

	resp, err := f.service.AmendItemStatus(context.Background(), itemID, AmendItemStatusRequest{
		Status: returns.ItemStatusResellable,
	})
	require.NoError(t, err)
	assert.Equal(t, returns.ItemStatusResellable, resp.Status)
	f.productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAmendItemStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	_, err := f.service.AmendItemStatus(context.Background(), uuid.New(), AmendItemStatusRequest{
		Status: returns.ItemStatus("LOST"),
	})
	assert.Error(t, err)
}
