// Package domain defines the export surface: the data selections handed to
// document renderers plus the resulting file artifacts.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html"
)

// File is a rendered export artifact ready for download.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

type Service interface {
	// InvoicesCSV selects exactly the invoices matching ids and renders
	// them as CSV. An empty or no-match id set yields a header-only file,
	// not an error.
	InvoicesCSV(ctx context.Context, ids []snowflake.ID) (File, error)
	InvoicePDF(ctx context.Context, id snowflake.ID) (File, error)
	InvoiceHTML(ctx context.Context, id snowflake.ID) (string, error)
}
