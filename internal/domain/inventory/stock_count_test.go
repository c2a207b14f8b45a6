package inventory

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isms/backend/internal/domain/shared"
)

func TestNewStockMovement_Validation(t *testing.T) {
	_, err := NewStockMovement(uuid.Nil, MovementStockIn, 1, "", "")
	assert.Error(t, err)

	_, err = NewStockMovement(uuid.New(), MovementType("TRANSFER"), 1, "", "")
	assert.Error(t, err)

	_, err = NewStockMovement(uuid.New(), MovementStockOut, 0, "", "")
	assert.Error(t, err)

	m, err := NewStockMovement(uuid.New(), MovementStockIn, 5, "PO123", "Purchase Order Received")
	require.NoError(t, err)
	assert.Equal(t, 5, m.Quantity)
	assert.Equal(t, "PO123", m.Reference)
}

func TestStockCount_Lifecycle(t *testing.T) {
	sc, err := NewStockCount(GenerateCountNumber(), "admin", "monthly count")
	require.NoError(t, err)
	assert.Equal(t, CountStatusInProgress, sc.Status)

	item, err := sc.AddItem(uuid.New(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, item.SystemQty)
	assert.Nil(t, item.CountedQty)

	require.NoError(t, item.RecordCount(10, "two missing"))
	require.NotNil(t, item.Variance)
	assert.Equal(t, -2, *item.Variance)

	require.NoError(t, sc.Complete())
	assert.Equal(t, CountStatusCompleted, sc.Status)
	require.NotNil(t, sc.CompletedAt)

	// terminal states reject further mutation
	assert.ErrorIs(t, sc.Complete(), shared.ErrInvalidState)
	_, err = sc.AddItem(uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestStockCount_Cancel(t *testing.T) {
	sc, err := NewStockCount(GenerateCountNumber(), "admin", "")
	require.NoError(t, err)
	require.NoError(t, sc.Cancel())
	assert.ErrorIs(t, sc.Complete(), shared.ErrInvalidState)
}

func TestStockCount_VarianceCount(t *testing.T) {
	sc, err := NewStockCount(GenerateCountNumber(), "admin", "")
	require.NoError(t, err)

	matched, err := sc.AddItem(uuid.New(), 5)
	require.NoError(t, err)
	require.NoError(t, matched.RecordCount(5, ""))

	short, err := sc.AddItem(uuid.New(), 5)
	require.NoError(t, err)
	require.NoError(t, short.RecordCount(3, ""))

	uncounted, err := sc.AddItem(uuid.New(), 7)
	require.NoError(t, err)
	_ = uncounted

	assert.Equal(t, 1, sc.VarianceCount())
}

func TestStockCountItem_RecordCount_Negative(t *testing.T) {
	sc, err := NewStockCount(GenerateCountNumber(), "admin", "")
	require.NoError(t, err)
	item, err := sc.AddItem(uuid.New(), 5)
	require.NoError(t, err)

	assert.Error(t, item.RecordCount(-1, ""))
}

func TestGenerateCountNumber_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateCountNumber(), "SC-"))
}
