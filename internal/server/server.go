// Package server hosts the plugin interface over HTTP: an init call
// that describes the recognized sync options and a sync call that runs
// subscription discovery with caller-supplied credentials.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tenantmap/internal/server/middleware"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/sync"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	orchestrator *sync.Orchestrator
	logger       *zerolog.Logger
	config       Config
	httpServer   *http.Server
	startTime    time.Time
}

// New creates a server hosting the given orchestrator.
func New(factory accounts.ClientFactory, cfg Config, logger *zerolog.Logger) *Server {
	s := &Server{
		orchestrator: sync.New(factory),
		logger:       logger,
		config:       cfg,
		startTime:    time.Now(),
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      chain(s.routes()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plugin/init", s.handleInit)
	mux.HandleFunc("POST /plugin/sync", s.handleSync)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until the context is canceled or the
// listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Plugin server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
