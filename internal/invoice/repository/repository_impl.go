// Package repository persists invoice aggregates with explicit SQL. Every
// read of an aggregate returns the root together with its line items.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerline/invoicedesk/internal/invoice/domain"
	pkgdb "github.com/ledgerline/invoicedesk/pkg/db"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`INSERT INTO invoices (id, customer_name, invoice_date, total_amount, status, exported_by, exported_at, metadata, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			invoice.ID,
			invoice.CustomerName,
			invoice.InvoiceDate,
			invoice.TotalAmount,
			invoice.Status,
			invoice.ExportedBy,
			invoice.ExportedAt,
			invoice.Metadata,
			invoice.CreatedAt,
			invoice.UpdatedAt,
		).Error; err != nil {
			return err
		}

		return insertLineItems(tx, invoice.LineItems)
	})
	if err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ErrDuplicateInvoice
		}
		return err
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_name, invoice_date, total_amount, status, exported_by, exported_at, metadata, created_at, updated_at
		 FROM invoices
		 WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}

	items, err := r.listLineItems(ctx, db, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.LineItems = items

	return &invoice, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_name, invoice_date, total_amount, status, exported_by, exported_at, metadata, created_at, updated_at
		 FROM invoices
		 ORDER BY created_at ASC, id ASC`,
	).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Replace overwrites the invoice row and substitutes the full line item set:
// all prior items are deleted before the new ones are inserted.
func (r *repo) Replace(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`UPDATE invoices
			 SET customer_name = ?, invoice_date = ?, total_amount = ?, updated_at = ?
			 WHERE id = ?`,
			invoice.CustomerName,
			invoice.InvoiceDate,
			invoice.TotalAmount,
			invoice.UpdatedAt,
			invoice.ID,
		).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			`DELETE FROM invoice_line_items WHERE invoice_id = ?`,
			invoice.ID,
		).Error; err != nil {
			return err
		}

		return insertLineItems(tx, invoice.LineItems)
	})
}

func (r *repo) UpdateTotal(ctx context.Context, db *gorm.DB, id snowflake.ID, total decimal.Decimal) error {
	return db.WithContext(ctx).Exec(
		`UPDATE invoices SET total_amount = ? WHERE id = ?`,
		total,
		id,
	).Error
}

func (r *repo) listLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceLineItem, error) {
	var items []domain.InvoiceLineItem
	err := db.WithContext(ctx).Raw(
		`SELECT id, invoice_id, description, quantity, unit_price, line_total, created_at
		 FROM invoice_line_items
		 WHERE invoice_id = ?
		 ORDER BY created_at ASC, id ASC`,
		invoiceID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func insertLineItems(tx *gorm.DB, items []domain.InvoiceLineItem) error {
	for _, item := range items {
		if err := tx.Exec(
			`INSERT INTO invoice_line_items (id, invoice_id, description, quantity, unit_price, line_total, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.InvoiceID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
			item.CreatedAt,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
