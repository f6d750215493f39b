package httpapi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/stellar-hauler/internal/adapters/metrics"
	"github.com/andrescamacho/stellar-hauler/internal/application/game"
	"github.com/andrescamacho/stellar-hauler/internal/application/mediator"
	"github.com/andrescamacho/stellar-hauler/internal/infrastructure/config"
)

// Options configures a Server
type Options struct {
	Mediator  mediator.Mediator
	Events    game.EventSubscriber
	SessionID string
	RateLimit config.RateLimitConfig

	// Empty disables the prometheus endpoint
	MetricsPath string

	Logger *slog.Logger
}

// Server exposes the game over JSON endpoints and pushes events over a websocket
type Server struct {
	mediator    mediator.Mediator
	hub         *Hub
	limiter     *rate.Limiter
	validate    *validator.Validate
	sessionID   string
	metricsPath string
	logger      *slog.Logger
}

// NewServer creates a server. Commands share one token bucket.
func NewServer(opts Options) (*Server, error) {
	if opts.Mediator == nil {
		return nil, fmt.Errorf("mediator is required")
	}
	if opts.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var limiter *rate.Limiter
	if opts.RateLimit.Requests > 0 {
		burst := opts.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit.Requests), burst)
	}

	return &Server{
		mediator:    opts.Mediator,
		hub:         NewHub(opts.Events, logger),
		limiter:     limiter,
		validate:    validator.New(),
		sessionID:   opts.SessionID,
		metricsPath: opts.MetricsPath,
		logger:      logger,
	}, nil
}

// Hub returns the websocket hub. It must be running for /ws to accept clients.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler builds the routed, logged handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/market", s.handleMarket)
	mux.HandleFunc("GET /api/travel", s.handleTravelOptions)
	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /api/ledger", s.handleLedger)
	mux.HandleFunc("GET /api/hauls", s.handleHauls)

	mux.Handle("POST /api/buy", s.throttle(http.HandlerFunc(s.handleBuy)))
	mux.Handle("POST /api/sell", s.throttle(http.HandlerFunc(s.handleSell)))
	mux.Handle("POST /api/travel", s.throttle(http.HandlerFunc(s.handleTravel)))
	mux.Handle("POST /api/refuel", s.throttle(http.HandlerFunc(s.handleRefuel)))

	mux.HandleFunc("GET /ws", s.hub.ServeWs)

	if s.metricsPath != "" && metrics.IsEnabled() {
		mux.Handle("GET "+s.metricsPath, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	return s.logRequests(mux)
}

// ListenAndServe runs the hub and the HTTP server until ctx is cancelled,
// then shuts down within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	server := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("Server exited")
	return nil
}

// throttle rejects commands beyond the configured rate with 429
func (s *Server) throttle(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "too many requests", Code: "rate_limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack is needed by the websocket upgrade
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
