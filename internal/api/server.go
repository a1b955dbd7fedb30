package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/repository"
	domain_service "github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Server wraps the HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer creates the HTTP server with all routes registered
func NewServer(
	port int,
	tracking domain_service.WhaleTrackingService,
	movements repository.MovementRepository,
	prices domain_service.PriceService,
	logger *logger.Logger,
) *Server {
	h := &Handler{
		tracking:  tracking,
		movements: movements,
		prices:    prices,
		logger:    logger.WithComponent("api"),
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      corsMiddleware(newRouter(h)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		logger:     logger.WithComponent("http-server"),
	}
}

// newRouter registers all API routes
func newRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("GET /api/whales", h.HandleGetWhales)
	mux.HandleFunc("GET /api/whales/summary", h.HandleGetWhaleSummary)
	mux.HandleFunc("GET /api/whales/{address}", h.HandleGetWhaleProfile)

	mux.HandleFunc("GET /api/movements", h.HandleGetMovements)
	mux.HandleFunc("GET /api/movements/whale/{address}", h.HandleGetMovementsByWhale)
	mux.HandleFunc("GET /api/movements/stats", h.HandleGetMovementStats)
	mux.HandleFunc("GET /api/movements/netflow", h.HandleGetNetFlow)

	mux.HandleFunc("POST /api/discover", h.HandleDiscoverWhales)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyzeWhale)

	return mux
}

// Start begins listening for HTTP requests, blocking until stopped
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware allows cross-origin reads from browser dashboards
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
