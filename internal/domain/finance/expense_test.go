package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	e, err := NewExpense("Rent", decimal.NewFromInt(250000), "March shop rent", "amina@shop.co.tz", date)
	require.NoError(t, err)

	assert.Equal(t, "Rent", e.Category)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, date, e.Date)
}

func TestNewExpense_DefaultsDateToNow(t *testing.T) {
	e, err := NewExpense("Transport", decimal.NewFromInt(5000), "Boda to supplier", "", time.Time{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), e.Date, time.Second)
}

func TestNewExpense_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewExpense("", decimal.NewFromInt(100), "desc", "", now)
	assert.Error(t, err)

	_, err = NewExpense("Rent", decimal.Zero, "desc", "", now)
	assert.Error(t, err)

	_, err = NewExpense("Rent", decimal.NewFromInt(-100), "desc", "", now)
	assert.Error(t, err)

	_, err = NewExpense("Rent", decimal.NewFromInt(100), "", "", now)
	assert.Error(t, err)
}

func TestExpense_Update(t *testing.T) {
	e, err := NewExpense("Rent", decimal.NewFromInt(250000), "March shop rent", "", time.Now())
	require.NoError(t, err)

	ref := "INV-2025-044"
	newDate := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.Update("Utilities", decimal.NewFromInt(80000), "LUKU tokens", &ref, newDate))

	assert.Equal(t, "Utilities", e.Category)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, &ref, e.Reference)
	assert.Equal(t, newDate, e.Date)

	assert.Error(t, e.Update("", e.Amount, e.Description, nil, e.Date))
}
