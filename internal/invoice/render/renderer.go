// Package render turns invoice detail data into a customer-facing HTML
// document. It only consumes view structs; byte layout stays in here.
package render

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceView struct {
	ID           string
	CustomerName string
	InvoiceDate  time.Time
	TotalAmount  decimal.Decimal
}

type LineItemView struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type RenderInput struct {
	Invoice InvoiceView
	Items   []LineItemView
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
