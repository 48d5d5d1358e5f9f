// Package diag exposes a local HTTP endpoint for health, metrics and a
// snapshot of the agent's view state. It binds to localhost and carries no
// authentication; it is an operator surface, not a product one.
package diag

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ride-hail-client/internal/common/logger"
)

// StateFunc returns a JSON-serializable snapshot of the agent's current view.
type StateFunc func() any

// ToggleFunc flips driver availability and returns the new state. Only the
// driver agent registers one.
type ToggleFunc func(ctx context.Context) (bool, error)

// Server is the diagnostics endpoint.
type Server struct {
	log    *logger.Logger
	port   int
	state  StateFunc
	toggle ToggleFunc
	httpd  *http.Server
}

// New builds a server for port. state may not be nil; toggle may be.
func New(port int, state StateFunc, toggle ToggleFunc, log *logger.Logger) *Server {
	return &Server{log: log, port: port, state: state, toggle: toggle}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/state", s.handleState)
	if s.toggle != nil {
		r.Post("/availability/toggle", s.handleToggle)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpd = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpd.ListenAndServe()
	}()
	s.log.Info(ctx, "diag_listening", "diagnostics endpoint up", map[string]any{"addr": s.httpd.Addr})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return s.httpd.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.state()); err != nil {
		s.log.Error(r.Context(), "diag_state_encode", "failed to encode state snapshot", err, nil)
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	online, err := s.toggle(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"online": online})
}
