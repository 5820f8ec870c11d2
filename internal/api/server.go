// Package api exposes the build pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/netutil"

	"github.com/erraggy/oasdocs"
	"github.com/erraggy/oasdocs/builder"
)

// Server is the HTTP API server for oasdocs.
type Server struct {
	router  chi.Router
	builder *builder.Builder
	log     *slog.Logger
	maxBody int64
}

// NewServer creates and configures the HTTP server. Request bodies larger than
// maxBody bytes are rejected.
func NewServer(b *builder.Builder, log *slog.Logger, maxBody int64) *Server {
	s := &Server{
		builder: b,
		log:     log,
		maxBody: maxBody,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody(s.maxBody))

		r.Post("/build", s.handleBuild)
		r.Post("/build/object", s.handleBuildObject)
		r.Post("/paths/update", s.handleUpdatePath)
		r.Post("/paths/get", s.handleGetPath)
	})

	s.router = r
}

// ListenAndServe listens on addr and serves until ctx is cancelled. At most
// maxConns connections are accepted at once when maxConns is positive.
func (s *Server) ListenAndServe(ctx context.Context, addr string, maxConns int) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("api: listen on %s: %w", addr, err)
	}
	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting oasdocs", "addr", ln.Addr().String(), "version", oasdocs.Version())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": oasdocs.Version()})
}
