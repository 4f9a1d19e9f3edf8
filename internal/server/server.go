// Package server exposes propagation and pass prediction over HTTP.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/akhenakh/sgp4/v2"
	"github.com/akhenakh/sgp4/v2/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr      string
	Logger    kitlog.Logger
	Metrics   *metrics.Collector
	Satellite sgp4.Config
	RateLimit rate.Limit // requests per second per client IP
	Burst     int
	PassStep  time.Duration
	DataStep  time.Duration
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     kitlog.Logger
	metrics    *metrics.Collector
	limiter    *ipRateLimiter
	opts       Options
}

// New creates a configured HTTP server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = kitlog.NewNopLogger()
	}
	if opts.Metrics == nil {
		// a private registry never collides
		opts.Metrics, _ = metrics.NewCollector(prometheus.NewRegistry())
	}
	s := &Server{
		logger:  kitlog.With(opts.Logger, "component", "api"),
		metrics: opts.Metrics,
		limiter: newIPRateLimiter(opts.RateLimit, opts.Burst),
		opts:    opts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("POST /api/v1/propagate", s.propagate)
	mux.HandleFunc("POST /api/v1/passes", s.passes)

	// metrics -> logging -> rate limit -> mux
	var handler http.Handler = mux
	handler = s.limiter.middleware(s.metrics.RateLimited.Inc)(handler)
	handler = loggingMiddleware(s.logger)(handler)
	handler = s.metrics.Middleware(mux)(handler)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.run(sweepCtx, limiterSweepEvery)

	errc := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "listening", "addr", s.opts.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	level.Info(s.logger).Log("msg", "shutting down")
	return s.httpServer.Shutdown(sctx)
}

// probePath returns true for paths that should not log at INFO nor be rate limited.
func probePath(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger kitlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			lvl := level.Info
			if probePath(r.URL.Path) {
				lvl = level.Debug
			}
			lvl(logger).Log(
				"msg", "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", strconv.Itoa(sr.statusCode),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", clientIP(r),
			)
		})
	}
}
