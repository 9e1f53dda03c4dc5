package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mergehosts/mergehosts/src/internal/log"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// NewServer creates a new HTTP server
func NewServer(bindAddr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts the server down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Infof("[API] Starting server on %s", ln.Addr())
	s.logger.Infof("[API] Example: curl http://%s/hosts", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
