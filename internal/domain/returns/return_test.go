package returns

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReturn(t *testing.T) *Return {
	t.Helper()
	ret, err := NewReturn(GenerateReturnNumber(), "damaged on delivery", "admin")
	require.NoError(t, err)
	return ret
}

func TestNewReturn_Validation(t *testing.T) {
	_, err := NewReturn("", "reason", "admin")
	assert.Error(t, err)
}

// Scenario: original value 30,000 replaced by a 45,000 product.
func TestReturn_ReplacementDearer_ClientPays(t *testing.T) {
	ret := newTestReturn(t)
	replacementID := uuid.New()

	item, err := ret.AddItem(ItemInput{
		ProductID:            uuid.New(),
		Quantity:             1,
		Status:               ItemStatusResellable,
		AwardedType:          AwardReplacement,
		ReplacementProductID: &replacementID,
		OriginalProductValue: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(30000), decimal.NewFromInt(45000), "iPhone 13 Pro")
	require.NoError(t, err)

	assert.True(t, item.PriceDifference.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, PayerClient, item.DifferencePaidBy)
	assert.True(t, item.ReplacementProductPrice.Equal(decimal.NewFromInt(45000)))
}

// Scenario: original value 30,000 replaced by a 20,000 product.
func TestReturn_ReplacementCheaper_BusinessPays(t *testing.T) {
	ret := newTestReturn(t)
	replacementID := uuid.New()

	item, err := ret.AddItem(ItemInput{
		ProductID:            uuid.New(),
		Quantity:             1,
		Status:               ItemStatusResellable,
		AwardedType:          AwardReplacement,
		ReplacementProductID: &replacementID,
		OriginalProductValue: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(30000), decimal.NewFromInt(20000), "Tecno Spark 10")
	require.NoError(t, err)

	// stored as the non-negative magnitude
	assert.True(t, item.PriceDifference.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, PayerBusiness, item.DifferencePaidBy)
}

func TestReturn_ReplacementEqualValue_NoDifference(t *testing.T) {
	ret := newTestReturn(t)
	replacementID := uuid.New()

	item, err := ret.AddItem(ItemInput{
		ProductID:            uuid.New(),
		Quantity:             1,
		AwardedType:          AwardReplacement,
		ReplacementProductID: &replacementID,
		OriginalProductValue: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(30000), decimal.NewFromInt(30000), "")
	require.NoError(t, err)

	assert.True(t, item.PriceDifference.IsZero())
	assert.Equal(t, PayerClient, item.DifferencePaidBy)
}

func TestReturn_OriginalValueDefaultsToProductPrice(t *testing.T) {
	ret := newTestReturn(t)
	replacementID := uuid.New()

	item, err := ret.AddItem(ItemInput{
		ProductID:            uuid.New(),
		Quantity:             1,
		AwardedType:          AwardReplacement,
		ReplacementProductID: &replacementID,
	}, decimal.NewFromInt(28000), decimal.NewFromInt(40000), "")
	require.NoError(t, err)

	assert.True(t, item.OriginalProductValue.Equal(decimal.NewFromInt(28000)))
	assert.True(t, item.PriceDifference.Equal(decimal.NewFromInt(12000)))
}

func TestReturn_NonReplacementHasNoDifference(t *testing.T) {
	ret := newTestReturn(t)

	item, err := ret.AddItem(ItemInput{
		ProductID:    uuid.New(),
		Quantity:     2,
		Status:       ItemStatusFaulty,
		AwardedType:  AwardRefund,
		RefundAmount: decimal.NewFromInt(90000),
	}, decimal.NewFromInt(45000), decimal.Zero, "")
	require.NoError(t, err)

	assert.True(t, item.PriceDifference.IsZero())
	assert.Equal(t, PayerClient, item.DifferencePaidBy)
	assert.True(t, ret.TotalRefund.Equal(decimal.NewFromInt(90000)))
}

func TestReturn_TotalRefundAggregation(t *testing.T) {
	ret := newTestReturn(t)
	replacementID := uuid.New()

	_, err := ret.AddItem(ItemInput{
		ProductID:    uuid.New(),
		Quantity:     1,
		AwardedType:  AwardRefund,
		RefundAmount: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(30000), decimal.Zero, "")
	require.NoError(t, err)

	_, err = ret.AddItem(ItemInput{
		ProductID:            uuid.New(),
		Quantity:             1,
		AwardedType:          AwardReplacement,
		ReplacementProductID: &replacementID,
		OriginalProductValue: decimal.NewFromInt(30000),
	}, decimal.NewFromInt(30000), decimal.NewFromInt(45000), "")
	require.NoError(t, err)

	// refunds on REFUND awards plus every price difference
	assert.True(t, ret.TotalRefund.Equal(decimal.NewFromInt(45000)))
}

func TestReturn_AddItem_Validation(t *testing.T) {
	ret := newTestReturn(t)

	_, err := ret.AddItem(ItemInput{ProductID: uuid.Nil, Quantity: 1}, decimal.Zero, decimal.Zero, "")
	assert.Error(t, err)

	_, err = ret.AddItem(ItemInput{ProductID: uuid.New(), Quantity: 0}, decimal.Zero, decimal.Zero, "")
	assert.Error(t, err)

	_, err = ret.AddItem(ItemInput{ProductID: uuid.New(), Quantity: 1, Status: "BROKEN"}, decimal.Zero, decimal.Zero, "")
	assert.Error(t, err)

	_, err = ret.AddItem(ItemInput{ProductID: uuid.New(), Quantity: 1, AwardedType: "GIFT"}, decimal.Zero, decimal.Zero, "")
	assert.Error(t, err)
}

func TestReturnItem_ChangeStatus(t *testing.T) {
	ret := newTestReturn(t)
	item, err := ret.AddItem(ItemInput{ProductID: uuid.New(), Quantity: 1}, decimal.Zero, decimal.Zero, "")
	require.NoError(t, err)

	require.NoError(t, item.ChangeStatus(ItemStatusResellable))
	assert.Equal(t, ItemStatusResellable, item.Status)

	assert.Error(t, item.ChangeStatus("UNKNOWN"))
}

func TestGenerateReturnNumber_Format(t *testing.T) {
	n := GenerateReturnNumber()
	assert.True(t, strings.HasPrefix(n, "RET-"))
	assert.NotEqual(t, GenerateReturnNumber(), n)
}
