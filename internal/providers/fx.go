// Package providers aggregates the document rendering providers.
package providers

import (
	"go.uber.org/fx"

	"github.com/ledgerline/invoicedesk/internal/providers/pdf"
)

var Module = fx.Module("providers",
	pdf.Module,
)
