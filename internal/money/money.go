package money

import (
	"github.com/shopspring/decimal"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
)

// ===============================
// Line / invoice arithmetic
// ===============================

type Item struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal calcula quantity × unitPrice.
func LineTotal(quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, httperr.ErrBusiness("invalid_quantity")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, httperr.ErrBusiness("invalid_unit_price")
	}

	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// InvoiceTotal soma os line totals; zero para lista vazia.
func InvoiceTotal(items []Item) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, it := range items {
		line, err := LineTotal(it.Quantity, it.UnitPrice)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(line)
	}

	return total, nil
}
