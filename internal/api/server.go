package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/MJE43/darts-checkout-go/internal/config"
	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/scan"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server handles HTTP requests
type Server struct {
	solver       *darts.Solver
	scanner      *scan.Scanner
	errorHandler *ErrorHandler
	logger       *zap.Logger
	cfg          config.ServerConfig
	scanTimeout  time.Duration
	startTime    time.Time

	httpServer *http.Server
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	solver := darts.NewSolver()
	server := &Server{
		solver:       solver,
		scanner:      scan.NewScanner(solver, cfg.Scan.Workers),
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		cfg:          cfg.Server,
		scanTimeout:  cfg.Scan.Timeout,
		startTime:    time.Now(),
	}

	logger.Info("system_startup",
		zap.String("engine_version", EngineVersion),
		zap.Int("modes_available", len(darts.Modes())),
		zap.Int("scan_workers", server.scanner.Workers()),
		zap.Int("ceiling", solver.Board().Ceiling()),
	)

	return server
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(s.requestTimeout()))
	r.Use(corsMiddleware(s.cfg.CORSOrigins))

	// Health and monitoring endpoints
	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", s.checkoutRoutes)

	// Legacy routes (without /api/v1 prefix)
	s.checkoutRoutes(r)

	return r
}

func (s *Server) checkoutRoutes(r chi.Router) {
	r.Post("/finish", s.handleFinish)
	r.Get("/finish/{score}/{throws}", s.handleFinishPath)
	r.Post("/round", s.handleRound)
	r.Get("/round/{score}", s.handleRoundPath)
	r.Post("/scan", s.handleScan)
	r.Get("/chart", s.handleChart)
	r.Get("/modes", s.handleModes)
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout > 0 {
		return s.cfg.RequestTimeout
	}
	return 60 * time.Second
}

// Start binds the configured address and serves in a goroutine. It
// returns once the socket is bound.
func (s *Server) Start() (net.Addr, error) {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return nil, err
	}

	s.logger.Info("server_listening", zap.String("addr", ln.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server_failed", zap.Error(err))
		}
	}()
	return ln.Addr(), nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("system_shutdown", zap.Duration("uptime", time.Since(s.startTime)))
	return s.httpServer.Shutdown(ctx)
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("response_encode_failed", zap.Error(err))
	}
}
