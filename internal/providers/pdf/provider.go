// Package pdf renders invoice documents as PDF bytes.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
