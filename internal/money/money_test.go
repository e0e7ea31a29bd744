package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestLineTotal(t *testing.T) {
	got, err := LineTotal(3, d("12.50"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("37.50")), "got %s", got)

	got, err = LineTotal(1, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLineTotal_InvalidQuantity(t *testing.T) {
	_, err := LineTotal(0, d("10"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))

	_, err = LineTotal(-2, d("10"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestLineTotal_NegativePrice(t *testing.T) {
	_, err := LineTotal(1, d("-0.01"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_unit_price"))
}

func TestInvoiceTotal(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: d("50")},
		{Quantity: 2, UnitPrice: d("25")},
	}

	total, err := InvoiceTotal(items)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("100")), "got %s", total)
}

func TestInvoiceTotal_Empty(t *testing.T) {
	total, err := InvoiceTotal(nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestInvoiceTotal_PropagatesInvalidItem(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: d("50")},
		{Quantity: 0, UnitPrice: d("25")},
	}

	_, err := InvoiceTotal(items)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCurrency(d("1234.56"), "USD", "en-US"))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero, "USD", "en-US"))
	assert.Equal(t, "-$45.00", FormatCurrency(d("-45"), "USD", "en-US"))
}

func TestFormatCurrency_NeverFails(t *testing.T) {
	// locale e moeda inválidos não podem derrubar a renderização
	got := FormatCurrency(d("10"), "???", "not-a-locale")
	assert.Contains(t, got, "10.00")
}
