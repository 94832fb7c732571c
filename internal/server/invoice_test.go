package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	exportdomain "github.com/ledgerline/invoicedesk/internal/export/domain"
	invoicedomain "github.com/ledgerline/invoicedesk/internal/invoice/domain"
	"github.com/ledgerline/invoicedesk/pkg/db/pagination"
)

type fakeInvoiceService struct {
	addID       snowflake.ID
	addErr      error
	lastAddReq  invoicedomain.AddInvoiceRequest
	lastArgs    invoicedomain.InvoiceListArgs
	detail      invoicedomain.InvoiceDetail
	detailErr   error
	recalcCalls int
}

func (f *fakeInvoiceService) AddInvoice(ctx context.Context, req invoicedomain.AddInvoiceRequest) (snowflake.ID, error) {
	f.lastAddReq = req
	return f.addID, f.addErr
}

func (f *fakeInvoiceService) GetInvoiceSummaries(ctx context.Context, args invoicedomain.InvoiceListArgs) (pagination.PagedResult[invoicedomain.InvoiceSummary], error) {
	f.lastArgs = args
	return pagination.PagedResult[invoicedomain.InvoiceSummary]{
		CurrentPage: args.PageNumber,
		PageSize:    args.PageSize,
		Items:       []invoicedomain.InvoiceSummary{},
	}, nil
}

func (f *fakeInvoiceService) GetInvoiceByID(ctx context.Context, id snowflake.ID) (invoicedomain.InvoiceDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeInvoiceService) CalculateInvoiceTotal(ctx context.Context, id snowflake.ID) error {
	f.recalcCalls++
	return nil
}

func (f *fakeInvoiceService) UpdateInvoice(ctx context.Context, id snowflake.ID, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.InvoiceDetail, error) {
	return f.detail, f.detailErr
}

type fakeExportService struct {
	file exportdomain.File
	err  error
}

func (f *fakeExportService) InvoicesCSV(ctx context.Context, ids []snowflake.ID) (exportdomain.File, error) {
	return f.file, f.err
}

func (f *fakeExportService) InvoicePDF(ctx context.Context, id snowflake.ID) (exportdomain.File, error) {
	return f.file, f.err
}

func (f *fakeExportService) InvoiceHTML(ctx context.Context, id snowflake.ID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return string(f.file.Content), nil
}

func newTestRouter(invoiceSvc invoicedomain.Service, exportSvc exportdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{
		log:        zap.NewNop(),
		invoiceSvc: invoiceSvc,
		exportSvc:  exportSvc,
	}
	s.registerRoutes(r)

	return r
}

func TestListInvoiceSummariesDefaultsPaging(t *testing.T) {
	fake := &fakeInvoiceService{}
	router := newTestRouter(fake, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices?search_term=Acme", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.lastArgs.PageNumber != 1 || fake.lastArgs.PageSize != 20 {
		t.Fatalf("expected default paging 1/20, got %d/%d", fake.lastArgs.PageNumber, fake.lastArgs.PageSize)
	}
	if fake.lastArgs.SearchTerm != "Acme" {
		t.Fatalf("expected search term Acme, got %q", fake.lastArgs.SearchTerm)
	}
}

func TestListInvoiceSummariesRejectsMalformedPaging(t *testing.T) {
	router := newTestRouter(&fakeInvoiceService{}, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices?page_number=abc", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddInvoiceEndpoint(t *testing.T) {
	fake := &fakeInvoiceService{addID: snowflake.ID(12345)}
	router := newTestRouter(fake, &fakeExportService{})

	body := `{"customer_name":"John Doe","invoice_date":"2026-01-15T00:00:00Z","line_items":[{"description":"Widget","quantity":2,"unit_price":"100"}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.lastAddReq.CustomerName != "John Doe" {
		t.Fatalf("expected bound customer name, got %q", fake.lastAddReq.CustomerName)
	}
	if len(fake.lastAddReq.LineItems) != 1 || !fake.lastAddReq.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected bound line items, got %+v", fake.lastAddReq.LineItems)
	}
}

func TestAddInvoiceEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeInvoiceService{}, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %q", resp.Error.Type)
	}
}

func TestAddInvoiceEndpointDuplicate(t *testing.T) {
	fake := &fakeInvoiceService{addErr: fmt.Errorf("insert invoice: %w", invoicedomain.ErrDuplicateInvoice)}
	router := newTestRouter(fake, &fakeExportService{})

	body := `{"customer_name":"John Doe","invoice_date":"2026-01-15T00:00:00Z"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "conflict") {
		t.Fatalf("expected conflict payload, got %s", rec.Body.String())
	}
}

func TestGetInvoiceByIDEndpoint(t *testing.T) {
	fake := &fakeInvoiceService{
		detail: invoicedomain.InvoiceDetail{
			ID:           snowflake.ID(777),
			CustomerName: "Jane Doe",
			InvoiceDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			TotalAmount:  decimal.NewFromInt(200),
		},
	}
	router := newTestRouter(fake, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/777", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe") {
		t.Fatalf("expected body to carry the invoice, got %s", rec.Body.String())
	}
}

func TestGetInvoiceByIDEndpointErrors(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		router := newTestRouter(&fakeInvoiceService{}, &fakeExportService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/invoices/not-a-number", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing invoice", func(t *testing.T) {
		fake := &fakeInvoiceService{detailErr: invoicedomain.ErrNotFound}
		router := newTestRouter(fake, &fakeExportService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/invoices/777", nil)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCalculateInvoiceTotalEndpoint(t *testing.T) {
	fake := &fakeInvoiceService{}
	router := newTestRouter(fake, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/777/recalculate", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if fake.recalcCalls != 1 {
		t.Fatalf("expected 1 recalculate call, got %d", fake.recalcCalls)
	}
}

func TestDownloadInvoicesCSVEndpoint(t *testing.T) {
	fake := &fakeExportService{
		file: exportdomain.File{
			Name:        "Invoices_20260203120000.csv",
			ContentType: exportdomain.ContentTypeCSV,
			Content:     []byte("InvoiceId,CustomerName,InvoiceDate,TotalAmount\n"),
		},
	}
	router := newTestRouter(&fakeInvoiceService{}, fake)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exports/invoices/csv?ids=1,2,3", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Invoices_20260203120000.csv") {
		t.Fatalf("expected attachment disposition, got %q", got)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("expected csv content type, got %q", got)
	}
}

func TestDownloadInvoicesCSVEndpointMalformedIDs(t *testing.T) {
	router := newTestRouter(&fakeInvoiceService{}, &fakeExportService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exports/invoices/csv?ids=1,abc", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
