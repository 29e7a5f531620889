package server

import (
	"context"
	"log/slog"
	"net/http"

	appseasons "season-service/internal/app/seasons"
	"season-service/internal/config"
	"season-service/internal/forecast"
	"season-service/internal/history"
	httpserver "season-service/internal/http"
	"season-service/internal/http/handlers"
	"season-service/internal/http/middleware"
	"season-service/internal/logging"
	"season-service/internal/metrics"
	"season-service/internal/monitor"
	"season-service/internal/seasontable"
)

var metricsSetup = metrics.Setup

// Server owns the season table, monitor, and HTTP surfaces for one process.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	table         *seasontable.Table
	service       *appseasons.Service
	forecaster    *forecast.Forecaster
	mon           *monitor.Monitor
	hist          *history.Store
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with full wiring from config.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	table := seasontable.Open(seasontable.NewFileStore(cfg.SeasonsFile), logger)
	service := appseasons.NewService(table)
	forecaster := forecast.New(table, logger)

	hist := buildHistory(cfg, logger)
	mon := buildMonitor(cfg, table, hist, recorder, logger)
	httpSrv := buildHTTPServer(cfg, service, forecaster, mon, hist, recorder, logger)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		table:         table,
		service:       service,
		forecaster:    forecaster,
		mon:           mon,
		hist:          hist,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, service *appseasons.Service, httpSrv httpServer, mon *monitor.Monitor) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    service,
		httpServer: httpSrv,
		mon:        mon,
	}
}

func buildHistory(cfg config.Config, logger *slog.Logger) *history.Store {
	if cfg.History.Path == "" {
		return nil
	}
	hist, err := history.Open(cfg.History.Path, cfg.History.RetentionDays)
	if err != nil {
		logging.Warn(logger, "history database unavailable, transitions kept in memory only",
			slog.String("path", cfg.History.Path), slog.Any("err", err))
		return nil
	}
	return hist
}

func buildMonitor(cfg config.Config, table *seasontable.Table, hist *history.Store, recorder *metrics.Recorder, logger *slog.Logger) *monitor.Monitor {
	opts := []monitor.Option{
		monitor.WithHistoryLimit(cfg.History.MemoryLimit),
		monitor.WithMetrics(recorder),
	}
	if hist != nil {
		opts = append(opts, monitor.WithHistoryStore(hist))
	}
	mon := monitor.New(table, cfg.Sports, cfg.PollInterval, logger, opts...)

	mon.AddSink(monitor.LogSink{Logger: logger})
	if cfg.Alerts.WebhookURL != "" {
		mon.AddSink(monitor.NewWebhookSink(cfg.Alerts.WebhookURL))
	}
	if cfg.Alerts.SlackWebhookURL != "" {
		mon.AddSink(monitor.NewSlackSink(cfg.Alerts.SlackWebhookURL))
	}
	return mon
}

func buildHTTPServer(cfg config.Config, service *appseasons.Service, forecaster *forecast.Forecaster, mon *monitor.Monitor, hist *history.Store, recorder *metrics.Recorder, logger *slog.Logger) httpServer {
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(service, cfg.AdminToken, logger)
	}
	handler := handlers.NewHandler(service, forecaster, mon, hist, admin, logger)
	router := httpserver.NewRouter(handler)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the monitor and HTTP server, then waits for context cancellation
// to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.mon != nil {
		s.mon.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.mon != nil {
		if err := s.mon.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop monitor", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.hist != nil {
		if err := s.hist.Close(); err != nil && s.logger != nil {
			s.logger.Warn("history close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
