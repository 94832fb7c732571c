// Package server wires the HTTP surface: routing, error mapping, and the
// controller layer over the invoice and export services.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ledgerline/invoicedesk/internal/config"
	"github.com/ledgerline/invoicedesk/internal/export"
	exportdomain "github.com/ledgerline/invoicedesk/internal/export/domain"
	"github.com/ledgerline/invoicedesk/internal/invoice"
	invoicedomain "github.com/ledgerline/invoicedesk/internal/invoice/domain"
	obslogger "github.com/ledgerline/invoicedesk/internal/observability/logger"
	obsmetrics "github.com/ledgerline/invoicedesk/internal/observability/metrics"
)

var Module = fx.Module("http.server",
	invoice.Module,
	export.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	Engine     *gin.Engine
	InvoiceSvc invoicedomain.Service
	ExportSvc  exportdomain.Service
}

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	exportSvc  exportdomain.Service
}

func NewServer(p Params) *Server {
	s := &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		invoiceSvc: p.InvoiceSvc,
		exportSvc:  p.ExportSvc,
	}
	s.registerRoutes(p.Engine)
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	invoices := api.Group("/invoices")
	invoices.GET("", s.ListInvoiceSummaries)
	invoices.POST("", s.AddInvoice)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.PUT("/:id", s.UpdateInvoice)
	invoices.POST("/:id/recalculate", s.CalculateInvoiceTotal)

	exports := api.Group("/exports/invoices")
	exports.GET("/csv", s.DownloadInvoicesCSV)
	exports.GET("/:id/pdf", s.DownloadInvoicePDF)
	exports.GET("/:id/html", s.PreviewInvoiceHTML)
}

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           cfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
