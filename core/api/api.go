/*
The api package defines the HTTP API of the service, using std net/http.
See routes in ./handler.go. Each request builds its own random source, so
concurrent runs never share one.
*/
package api

import (
	"context"
	"errors"
	"kstep/cfg"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// NewHandler builds the routed handler. Metrics are registered on 'reg',
// which is also what /metrics exposes.
func NewHandler(c cfg.Config, logger *zap.Logger, reg *prometheus.Registry) http.Handler {
	h := &handler{
		cfg:     c,
		log:     logger,
		mux:     http.NewServeMux(),
		metrics: newMetrics(reg),
		gather:  reg,
	}
	if c.API.RequestsPerSecond > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(c.API.RequestsPerSecond), c.API.Burst)
	}
	h.setRoutes()
	return h.mux
}

// Start listens on c.API.Addr and serves until ctx is done.
func Start(ctx context.Context, c cfg.Config, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", c.API.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, c, logger)
}

// Serve serves the API on 'ln' until ctx is done, then shuts the server down
// gracefully within c.API.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, c cfg.Config, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &http.Server{
		Handler:      NewHandler(c, logger, reg),
		ReadTimeout:  c.API.ReadTimeout.Duration,
		WriteTimeout: c.API.WriteTimeout.Duration,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", zap.String("addr", ln.Addr().String()))
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.API.ShutdownTimeout.Duration)
		defer cancel()
		logger.Info("api shutting down")
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
