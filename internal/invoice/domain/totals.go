package domain

import "github.com/shopspring/decimal"

// LineTotal derives the amount of one line. Quantity is taken as-is, so a
// negative quantity yields a negative line total.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// InvoiceTotal sums the stored line totals. An empty item set totals to zero.
func InvoiceTotal(items []InvoiceLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}
