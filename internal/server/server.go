package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/trapcalc/internal/errors"
	"github.com/agbru/trapcalc/internal/logging"
)

const (
	// MetricsPath is the route serving the Prometheus exposition.
	MetricsPath = "/metrics"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves a metrics handler on MetricsPath.
type Server struct {
	addr    string
	metrics http.Handler
	logger  logging.Logger

	httpServer *http.Server
}

// New builds a server for addr. The handler is typically
// (*metrics.SweepMetrics).Handler().
func New(addr string, metrics http.Handler, logger logging.Logger) *Server {
	s := &Server{addr: addr, metrics: metrics, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc(MetricsPath, securityHeaders(s.handleMetrics))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Run listens on the configured address and serves until ctx is canceled,
// then shuts the server down gracefully. It returns nil after a clean
// shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return apperrors.WrapError(err, "metrics server: listen on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.WrapError(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.ServeHTTP(w, r)
}

// securityHeaders sets conservative response headers on every reply.
func securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next(w, r)
	}
}
