package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) DownloadInvoicesCSV(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		AbortWithError(c, newValidationError("ids", "invalid_invoice_id", "ids must be a comma-separated list of invoice ids"))
		return
	}

	file, err := s.exportSvc.InvoicesCSV(c.Request.Context(), ids)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_invoice_id", "invalid id"))
		return
	}

	file, err := s.exportSvc.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func (s *Server) PreviewInvoiceHTML(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_invoice_id", "invalid id"))
		return
	}

	html, err := s.exportSvc.InvoiceHTML(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
