package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	exportdomain "github.com/ledgerline/invoicedesk/internal/export/domain"
	invoicedomain "github.com/ledgerline/invoicedesk/internal/invoice/domain"
	"github.com/ledgerline/invoicedesk/internal/invoice/render"
	invoicerepo "github.com/ledgerline/invoicedesk/internal/invoice/repository"
	invoiceservice "github.com/ledgerline/invoicedesk/internal/invoice/service"
	"github.com/ledgerline/invoicedesk/internal/providers/pdf"
)

func TestInvoicesCSVSelectsRequestedInvoices(t *testing.T) {
	exportSvc, invoiceSvc, _ := setupExportService(t)
	ctx := context.Background()

	selected := seedExportInvoice(t, invoiceSvc, "Jane Smith", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(50))
	seedExportInvoice(t, invoiceSvc, "Left Out", time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(10))

	file, err := exportSvc.InvoicesCSV(ctx, []snowflake.ID{selected})
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	if file.ContentType != exportdomain.ContentTypeCSV {
		t.Fatalf("expected content type %q, got %q", exportdomain.ContentTypeCSV, file.ContentType)
	}
	if !strings.HasPrefix(file.Name, "Invoices_") || !strings.HasSuffix(file.Name, ".csv") {
		t.Fatalf("unexpected file name %q", file.Name)
	}

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}

	wantHeader := []string{"InvoiceId", "CustomerName", "InvoiceDate", "TotalAmount"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header column %d: expected %q, got %q", i, col, records[0][i])
		}
	}

	row := records[1]
	if row[0] != selected.String() {
		t.Fatalf("expected invoice id %s, got %s", selected.String(), row[0])
	}
	if row[1] != "Jane Smith" {
		t.Fatalf("expected customer Jane Smith, got %q", row[1])
	}
	if row[2] != "2026-02-03" {
		t.Fatalf("expected date 2026-02-03, got %q", row[2])
	}
	if row[3] != "50.00" {
		t.Fatalf("expected total 50.00, got %q", row[3])
	}
}

func TestInvoicesCSVOrdersByInvoiceDateDescending(t *testing.T) {
	exportSvc, invoiceSvc, _ := setupExportService(t)
	ctx := context.Background()

	older := seedExportInvoice(t, invoiceSvc, "Older", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(10))
	newer := seedExportInvoice(t, invoiceSvc, "Newer", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(20))

	file, err := exportSvc.InvoicesCSV(ctx, []snowflake.ID{older, newer})
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[1][0] != newer.String() {
		t.Fatalf("expected newest invoice first, got %s", records[1][0])
	}
	if records[2][0] != older.String() {
		t.Fatalf("expected oldest invoice last, got %s", records[2][0])
	}
}

func TestInvoicesCSVEmptySelectionYieldsHeaderOnly(t *testing.T) {
	exportSvc, invoiceSvc, node := setupExportService(t)
	ctx := context.Background()

	seedExportInvoice(t, invoiceSvc, "Jane Smith", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), 1, decimal.NewFromInt(50))

	for _, ids := range [][]snowflake.ID{nil, {node.Generate()}} {
		file, err := exportSvc.InvoicesCSV(ctx, ids)
		if err != nil {
			t.Fatalf("export csv with %d ids: %v", len(ids), err)
		}
		records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
		if err != nil {
			t.Fatalf("parse csv: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected header-only file, got %d records", len(records))
		}
	}
}

func TestInvoicePDF(t *testing.T) {
	exportSvc, invoiceSvc, node := setupExportService(t)
	ctx := context.Background()

	id := seedExportInvoice(t, invoiceSvc, "Jane Smith", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), 2, decimal.NewFromInt(25))

	file, err := exportSvc.InvoicePDF(ctx, id)
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if file.ContentType != exportdomain.ContentTypePDF {
		t.Fatalf("expected content type %q, got %q", exportdomain.ContentTypePDF, file.ContentType)
	}
	if want := fmt.Sprintf("Invoice_%s.pdf", id.String()); file.Name != want {
		t.Fatalf("expected file name %q, got %q", want, file.Name)
	}
	if !bytes.HasPrefix(file.Content, []byte("%PDF")) {
		t.Fatalf("expected pdf payload, got %q", string(file.Content[:min(8, len(file.Content))]))
	}

	if _, err := exportSvc.InvoicePDF(ctx, node.Generate()); !errors.Is(err, invoicedomain.ErrNotFound) {
		t.Fatalf("expected not found for unknown invoice, got %v", err)
	}
}

func TestInvoiceHTML(t *testing.T) {
	exportSvc, invoiceSvc, node := setupExportService(t)
	ctx := context.Background()

	id := seedExportInvoice(t, invoiceSvc, "Jane Smith", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), 2, decimal.NewFromInt(25))

	html, err := exportSvc.InvoiceHTML(ctx, id)
	if err != nil {
		t.Fatalf("export html: %v", err)
	}
	for _, want := range []string{"Jane Smith", "2026-02-03", "50.00", id.String()} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected rendered html to contain %q", want)
		}
	}

	if _, err := exportSvc.InvoiceHTML(ctx, node.Generate()); !errors.Is(err, invoicedomain.ErrNotFound) {
		t.Fatalf("expected not found for unknown invoice, got %v", err)
	}
}

func setupExportService(t *testing.T) (exportdomain.Service, invoicedomain.Service, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&invoicedomain.Invoice{}, &invoicedomain.InvoiceLineItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  invoicerepo.Provide(),
	})

	exportSvc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		InvoiceSvc: invoiceSvc,
		PDF:        pdf.New(),
		Renderer:   render.NewRenderer(),
	})

	return exportSvc, invoiceSvc, node
}

func seedExportInvoice(t *testing.T, svc invoicedomain.Service, customer string, date time.Time, qty int64, price decimal.Decimal) snowflake.ID {
	t.Helper()

	id, err := svc.AddInvoice(context.Background(), invoicedomain.AddInvoiceRequest{
		CustomerName: customer,
		InvoiceDate:  date,
		LineItems: []invoicedomain.LineItemInput{
			{Description: "Consulting", Quantity: qty, UnitPrice: price},
		},
	})
	if err != nil {
		t.Fatalf("seed invoice for %s: %v", customer, err)
	}
	return id
}
