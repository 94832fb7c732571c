package observability

import (
	"go.uber.org/fx"

	"github.com/ledgerline/invoicedesk/internal/observability/logger"
	"github.com/ledgerline/invoicedesk/internal/observability/metrics"
)

var Module = fx.Module("observability",
	fx.Provide(
		logger.New,
		metrics.NewHTTPMetrics,
	),
)
