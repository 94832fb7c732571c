// Package service assembles export projections and hands them to the
// CSV, PDF, and HTML renderers.
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	exportdomain "github.com/ledgerline/invoicedesk/internal/export/domain"
	invoicedomain "github.com/ledgerline/invoicedesk/internal/invoice/domain"
	"github.com/ledgerline/invoicedesk/internal/invoice/render"
	"github.com/ledgerline/invoicedesk/internal/providers/pdf"
	"github.com/ledgerline/invoicedesk/pkg/db/option"
	"github.com/ledgerline/invoicedesk/pkg/repository"
)

const csvTimestampLayout = "20060102150405"

var csvHeader = []string{"InvoiceId", "CustomerName", "InvoiceDate", "TotalAmount"}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	PDF        pdf.Provider
	Renderer   render.Renderer
}

type Service struct {
	log        *zap.Logger
	invoices   repository.Repository[invoicedomain.Invoice]
	invoiceSvc invoicedomain.Service
	pdf        pdf.Provider
	renderer   render.Renderer
}

func New(p Params) exportdomain.Service {
	return &Service{
		log:        p.Log.Named("export.service"),
		invoices:   repository.ProvideStore[invoicedomain.Invoice](p.DB),
		invoiceSvc: p.InvoiceSvc,
		pdf:        p.PDF,
		renderer:   p.Renderer,
	}
}

func (s *Service) InvoicesCSV(ctx context.Context, ids []snowflake.ID) (exportdomain.File, error) {
	var invoices []*invoicedomain.Invoice
	if len(ids) > 0 {
		found, err := s.invoices.Find(ctx, &invoicedomain.Invoice{},
			option.ApplyOperator(option.Condition{Field: "id", Operator: option.IN, Value: ids}),
			option.WithOrder("invoice_date DESC, id ASC"),
		)
		if err != nil {
			return exportdomain.File{}, fmt.Errorf("select invoices for csv: %w", err)
		}
		invoices = found
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return exportdomain.File{}, err
	}
	for _, invoice := range invoices {
		if invoice == nil {
			continue
		}
		record := []string{
			invoice.ID.String(),
			invoice.CustomerName,
			invoice.InvoiceDate.UTC().Format("2006-01-02"),
			invoice.TotalAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return exportdomain.File{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return exportdomain.File{}, err
	}

	s.log.Info("invoices exported to csv",
		zap.Int("requested", len(ids)),
		zap.Int("matched", len(invoices)),
	)

	return exportdomain.File{
		Name:        fmt.Sprintf("Invoices_%s.csv", time.Now().UTC().Format(csvTimestampLayout)),
		ContentType: exportdomain.ContentTypeCSV,
		Content:     buf.Bytes(),
	}, nil
}

func (s *Service) InvoicePDF(ctx context.Context, id snowflake.ID) (exportdomain.File, error) {
	detail, err := s.invoiceSvc.GetInvoiceByID(ctx, id)
	if err != nil {
		return exportdomain.File{}, err
	}

	reader, err := s.pdf.GenerateInvoice(ctx, buildPDFData(detail))
	if err != nil {
		return exportdomain.File{}, fmt.Errorf("generate invoice pdf: %w", err)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return exportdomain.File{}, err
	}

	return exportdomain.File{
		Name:        fmt.Sprintf("Invoice_%s.pdf", detail.ID.String()),
		ContentType: exportdomain.ContentTypePDF,
		Content:     content,
	}, nil
}

func (s *Service) InvoiceHTML(ctx context.Context, id snowflake.ID) (string, error) {
	detail, err := s.invoiceSvc.GetInvoiceByID(ctx, id)
	if err != nil {
		return "", err
	}

	return s.renderer.RenderHTML(buildRenderInput(detail))
}

func buildPDFData(detail invoicedomain.InvoiceDetail) pdf.InvoiceData {
	items := make([]pdf.InvoiceItem, 0, len(detail.LineItems))
	for _, item := range detail.LineItems {
		items = append(items, pdf.InvoiceItem{
			Description: item.Description,
			Qty:         item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.LineTotal.StringFixed(2),
		})
	}
	return pdf.InvoiceData{
		InvoiceID:    detail.ID.String(),
		CustomerName: detail.CustomerName,
		InvoiceDate:  detail.InvoiceDate.UTC().Format("2006-01-02"),
		Total:        detail.TotalAmount.StringFixed(2),
		Items:        items,
	}
}

func buildRenderInput(detail invoicedomain.InvoiceDetail) render.RenderInput {
	items := make([]render.LineItemView, 0, len(detail.LineItems))
	for _, item := range detail.LineItems {
		items = append(items, render.LineItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return render.RenderInput{
		Invoice: render.InvoiceView{
			ID:           detail.ID.String(),
			CustomerName: detail.CustomerName,
			InvoiceDate:  detail.InvoiceDate,
			TotalAmount:  detail.TotalAmount,
		},
		Items: items,
	}
}
