package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/ledgerline/invoicedesk/internal/invoice/domain"
)

func (s *Server) ListInvoiceSummaries(c *gin.Context) {
	pageNumber, err := parseIntQuery(c.Query("page_number"), 1)
	if err != nil {
		AbortWithError(c, newValidationError("page_number", "invalid_page_number", "page number must be an integer"))
		return
	}
	pageSize, err := parseIntQuery(c.Query("page_size"), 20)
	if err != nil {
		AbortWithError(c, newValidationError("page_size", "invalid_page_size", "page size must be an integer"))
		return
	}

	resp, err := s.invoiceSvc.GetInvoiceSummaries(c.Request.Context(), invoicedomain.InvoiceListArgs{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SearchTerm: c.Query("search_term"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AddInvoice(c *gin.Context) {
	var req invoicedomain.AddInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id, err := s.invoiceSvc.AddInvoice(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": id}})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_invoice_id", "invalid id"))
		return
	}

	item, err := s.invoiceSvc.GetInvoiceByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_invoice_id", "invalid id"))
		return
	}

	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.UpdateInvoice(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CalculateInvoiceTotal(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_invoice_id", "invalid id"))
		return
	}

	if err := s.invoiceSvc.CalculateInvoiceTotal(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
