package export

import (
	"go.uber.org/fx"

	"github.com/ledgerline/invoicedesk/internal/export/service"
	"github.com/ledgerline/invoicedesk/internal/providers"
)

var Module = fx.Module("export.service",
	providers.Module,
	fx.Provide(service.New),
)
