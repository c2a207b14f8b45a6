package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_Symbol(t *testing.T) {
	assert.Equal(t, "TSh", TZS.Symbol())
	assert.Equal(t, "$", USD.Symbol())
	assert.Equal(t, "XYZ", Currency("XYZ").Symbol())
}

func TestCurrency_IsValid(t *testing.T) {
	assert.True(t, TZS.IsValid())
	assert.True(t, GBP.IsValid())
	assert.False(t, Currency("BTC").IsValid())
}

func TestDefaultCurrency(t *testing.T) {
	assert.Equal(t, TZS, DefaultCurrency)
	assert.True(t, DefaultCurrency.IsValid())
}
