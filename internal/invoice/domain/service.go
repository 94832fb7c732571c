package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/invoicedesk/pkg/db/pagination"
)

// LineItemInput is one requested invoice line. Quantity may be negative;
// the stored line total is derived from it as-is.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type AddInvoiceRequest struct {
	CustomerName string          `json:"customer_name"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	LineItems    []LineItemInput `json:"line_items"`
}

// UpdateInvoiceRequest replaces the whole aggregate state below the id:
// customer name, invoice date, and the entire line item set.
type UpdateInvoiceRequest struct {
	CustomerName string          `json:"customer_name"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	LineItems    []LineItemInput `json:"line_items"`
}

// InvoiceListArgs selects one page of invoice summaries. An empty SearchTerm
// disables filtering.
type InvoiceListArgs struct {
	PageNumber int
	PageSize   int
	SearchTerm string
}

type InvoiceSummary struct {
	ID           snowflake.ID    `json:"id"`
	CustomerName string          `json:"customer_name"`
	InvoiceDate  time.Time       `json:"invoice_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       InvoiceStatus   `json:"status"`
	ExportedBy   *string         `json:"exported_by,omitempty"`
	ExportedAt   *time.Time      `json:"exported_at,omitempty"`
}

type LineItemDetail struct {
	ID          snowflake.ID    `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type InvoiceDetail struct {
	ID           snowflake.ID     `json:"id"`
	CustomerName string           `json:"customer_name"`
	InvoiceDate  time.Time        `json:"invoice_date"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	LineItems    []LineItemDetail `json:"line_items"`
}

type Service interface {
	AddInvoice(ctx context.Context, req AddInvoiceRequest) (snowflake.ID, error)
	GetInvoiceSummaries(ctx context.Context, args InvoiceListArgs) (pagination.PagedResult[InvoiceSummary], error)
	GetInvoiceByID(ctx context.Context, id snowflake.ID) (InvoiceDetail, error)
	CalculateInvoiceTotal(ctx context.Context, id snowflake.ID) error
	UpdateInvoice(ctx context.Context, id snowflake.ID, req UpdateInvoiceRequest) (InvoiceDetail, error)
}

var (
	ErrInvalidCustomerName = errors.New("invalid_customer_name")
	ErrInvalidInvoiceDate  = errors.New("invalid_invoice_date")
	ErrInvalidUnitPrice    = errors.New("invalid_unit_price")
	ErrInvalidInvoiceID    = errors.New("invalid_invoice_id")
	ErrInvalidPageNumber   = errors.New("invalid_page_number")
	ErrInvalidPageSize     = errors.New("invalid_page_size")
	ErrNotFound            = errors.New("invoice_not_found")
	ErrDuplicateInvoice    = errors.New("duplicate_invoice")
)
