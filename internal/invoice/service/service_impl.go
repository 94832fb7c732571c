// Package service implements the invoice aggregate lifecycle.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ledgerline/invoicedesk/internal/invoice/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// AddInvoice validates the request, derives every line total and the
// aggregate total, and persists the new invoice in a single insert.
func (s *Service) AddInvoice(ctx context.Context, req domain.AddInvoiceRequest) (snowflake.ID, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return 0, domain.ErrInvalidCustomerName
	}
	if req.InvoiceDate.IsZero() {
		return 0, domain.ErrInvalidInvoiceDate
	}
	if err := validateLineItems(req.LineItems); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	invoiceID := s.genID.Generate()
	items := s.buildLineItems(invoiceID, req.LineItems, now)

	invoice := domain.Invoice{
		ID:           invoiceID,
		CustomerName: name,
		InvoiceDate:  req.InvoiceDate,
		TotalAmount:  domain.InvoiceTotal(items),
		Status:       domain.InvoiceStatusDraft,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
		LineItems:    items,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoiceID.String()),
		zap.Int("line_items", len(items)),
	)

	return invoiceID, nil
}

// GetInvoiceByID returns the detail projection of one aggregate.
func (s *Service) GetInvoiceByID(ctx context.Context, id snowflake.ID) (domain.InvoiceDetail, error) {
	if id <= 0 {
		return domain.InvoiceDetail{}, domain.ErrInvalidInvoiceID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.InvoiceDetail{}, fmt.Errorf("find invoice: %w", err)
	}
	if invoice == nil {
		return domain.InvoiceDetail{}, domain.ErrNotFound
	}

	return domain.ToDetail(*invoice), nil
}

// CalculateInvoiceTotal resyncs the stored total with the stored line items.
// A missing or structurally invalid id is a benign no-op: no write, no error.
func (s *Service) CalculateInvoiceTotal(ctx context.Context, id snowflake.ID) error {
	if id <= 0 {
		return nil
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("find invoice: %w", err)
	}
	if invoice == nil {
		s.log.Debug("recalculate skipped, invoice missing", zap.String("invoice_id", id.String()))
		return nil
	}

	total := domain.InvoiceTotal(invoice.LineItems)
	if err := s.repo.UpdateTotal(ctx, s.db, invoice.ID, total); err != nil {
		return fmt.Errorf("update invoice total: %w", err)
	}

	return nil
}

// UpdateInvoice overwrites the header fields and substitutes the entire line
// item set with the requested one, then recomputes the total. An empty item
// list is valid and clears the invoice down to a zero total.
func (s *Service) UpdateInvoice(ctx context.Context, id snowflake.ID, req domain.UpdateInvoiceRequest) (domain.InvoiceDetail, error) {
	if id <= 0 {
		return domain.InvoiceDetail{}, domain.ErrInvalidInvoiceID
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return domain.InvoiceDetail{}, domain.ErrInvalidCustomerName
	}
	if req.InvoiceDate.IsZero() {
		return domain.InvoiceDetail{}, domain.ErrInvalidInvoiceDate
	}
	if err := validateLineItems(req.LineItems); err != nil {
		return domain.InvoiceDetail{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.InvoiceDetail{}, fmt.Errorf("find invoice: %w", err)
	}
	if invoice == nil {
		return domain.InvoiceDetail{}, domain.ErrNotFound
	}

	now := time.Now().UTC()
	items := s.buildLineItems(invoice.ID, req.LineItems, now)

	invoice.CustomerName = name
	invoice.InvoiceDate = req.InvoiceDate
	invoice.LineItems = items
	invoice.TotalAmount = domain.InvoiceTotal(items)
	invoice.UpdatedAt = now

	if err := s.repo.Replace(ctx, s.db, invoice); err != nil {
		return domain.InvoiceDetail{}, fmt.Errorf("replace invoice: %w", err)
	}

	s.log.Info("invoice updated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int("line_items", len(items)),
	)

	return domain.ToDetail(*invoice), nil
}

func (s *Service) buildLineItems(invoiceID snowflake.ID, inputs []domain.LineItemInput, now time.Time) []domain.InvoiceLineItem {
	items := make([]domain.InvoiceLineItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, domain.InvoiceLineItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Description: input.Description,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
			LineTotal:   domain.LineTotal(input.Quantity, input.UnitPrice),
			CreatedAt:   now,
		})
	}
	return items
}

func validateLineItems(inputs []domain.LineItemInput) error {
	for _, input := range inputs {
		if input.UnitPrice.IsNegative() {
			return domain.ErrInvalidUnitPrice
		}
	}
	return nil
}
