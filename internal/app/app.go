package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/mpl-analyzer/internal/config"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"github.com/riskibarqy/mpl-analyzer/internal/infrastructure/spreadsheet"
	"github.com/riskibarqy/mpl-analyzer/internal/interfaces/httpapi"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/cache"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/metrics"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"golang.org/x/time/rate"
)

// NewReportService wires the spreadsheet loader, table cache and metrics into a
// report service. A nil registry skips metric registration.
func NewReportService(cfg config.Config, logger *logging.Logger, registry prometheus.Registerer) (*usecase.ReportService, error) {
	columns, err := config.LoadColumns(cfg.ColumnsFile)
	if err != nil {
		return nil, err
	}

	var tables *cache.Store[*sheet.Table]
	if cfg.CacheEnabled {
		tables = cache.NewStore[*sheet.Table](cfg.CacheTTL, cfg.CacheMaxEntries)
	}

	var reportMetrics *metrics.Reports
	if registry != nil {
		reportMetrics = metrics.NewReports(registry)
	}

	return usecase.NewReportService(spreadsheet.NewFactory(cfg.SheetName), usecase.ReportServiceOptions{
		Columns:       columns,
		DefaultPolicy: cfg.ScoringPolicy,
		BatchWorkers:  cfg.BatchWorkers,
		Tables:        tables,
		Metrics:       reportMetrics,
		Logger:        logger.Named("reports"),
	}), nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reportSvc, err := NewReportService(cfg, logger, registry)
	if err != nil {
		return nil, fmt.Errorf("build report service: %w", err)
	}

	handler := httpapi.NewHandler(reportSvc, cfg.UploadMaxBytes, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        httpapi.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Metrics:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
