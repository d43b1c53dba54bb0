// Package httpapi is the REST boundary of the Kanbord server: routing,
// request decoding, bearer authentication, error mapping and the
// surrounding middleware chain.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/logging"
	"github.com/dmitrijs2005/kanbord/internal/server/config"
)

type HTTPServer struct {
	address         string
	handler         http.Handler
	logger          logging.Logger
	shutdownTimeout time.Duration
	limiter         *rateLimiter
}

// NewHTTPServer assembles the middleware chain around h's routes:
// metrics, request logging, CORS, rate limiting, then the router.
func NewHTTPServer(cfg *config.Config, l logging.Logger, h *Handler) *HTTPServer {
	m := newMetrics()
	limiter := newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.handler())
	mux.Handle("/", limiter.middleware(h.Routes()))

	var handler http.Handler = mux
	handler = cors(cfg.AllowedOrigins)(handler)
	handler = requestLogger(l.With("module", "http_access"))(handler)
	handler = m.instrument(handler)

	return &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		handler:         handler,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: cfg.ShutdownTimeout,
		limiter:         limiter,
	}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.sweepLimiters(ctx)

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}

func (s *HTTPServer) sweepLimiters(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.sweep()
		}
	}
}
