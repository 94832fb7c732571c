package invoice

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ledgerline/invoicedesk/internal/invoice/domain"
	"github.com/ledgerline/invoicedesk/internal/invoice/render"
	"github.com/ledgerline/invoicedesk/internal/invoice/repository"
	"github.com/ledgerline/invoicedesk/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Invoice{},
		&domain.InvoiceLineItem{},
	)
}
