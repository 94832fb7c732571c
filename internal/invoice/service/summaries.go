package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ledgerline/invoicedesk/internal/invoice/domain"
	"github.com/ledgerline/invoicedesk/pkg/db/pagination"
)

// GetInvoiceSummaries filters by customer name containment, sorts by invoice
// date descending, and pages the result. The sort is stable so invoices
// sharing a date keep their insertion order across pages.
func (s *Service) GetInvoiceSummaries(ctx context.Context, args domain.InvoiceListArgs) (pagination.PagedResult[domain.InvoiceSummary], error) {
	if args.PageNumber < 1 {
		return pagination.PagedResult[domain.InvoiceSummary]{}, domain.ErrInvalidPageNumber
	}
	if args.PageSize < 1 {
		return pagination.PagedResult[domain.InvoiceSummary]{}, domain.ErrInvalidPageSize
	}

	invoices, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return pagination.PagedResult[domain.InvoiceSummary]{}, fmt.Errorf("list invoices: %w", err)
	}

	term := args.SearchTerm
	if term != "" {
		invoices = lo.Filter(invoices, func(invoice *domain.Invoice, _ int) bool {
			return invoice != nil && strings.Contains(invoice.CustomerName, term)
		})
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].InvoiceDate.After(invoices[j].InvoiceDate)
	})

	page := pagination.Paginate(invoices, pagination.PageArgs{
		PageNumber: args.PageNumber,
		PageSize:   args.PageSize,
	})

	return pagination.PagedResult[domain.InvoiceSummary]{
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
		Items: lo.Map(page.Items, func(invoice *domain.Invoice, _ int) domain.InvoiceSummary {
			return domain.ToSummary(*invoice)
		}),
	}, nil
}
