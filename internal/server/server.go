// Package server runs the result notifier as a standalone HTTP service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfrederiksen/quiz-results/internal/logger"
	"github.com/pfrederiksen/quiz-results/internal/metrics"
)

// SubmitPath is the route of the result notifier
const SubmitPath = "/api/submit-result"

const shutdownTimeout = 15 * time.Second

// NewRouter wires the notifier, a ping route and the metrics endpoint.
// All methods on SubmitPath reach the notifier, which answers 405 itself.
func NewRouter(notifier http.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.Any("/submit-result", gin.WrapH(notifier))
		api.GET("/ping", PingHandler)
	}

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}

	return router
}

// PingHandler answers liveness checks
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}

// Server is an HTTP server that stops when its context is cancelled
type Server struct {
	httpServer *http.Server
}

// New creates a Server listening on addr
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", logger.Fields{"addr": ln.Addr().String()})
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
