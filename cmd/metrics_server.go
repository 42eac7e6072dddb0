package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const metricsShutdownTimeout = 5 * time.Second

// withMetricsServer runs fn while serving /metrics on the configured
// address. Without an address fn runs alone.
func (a *app) withMetricsServer(ctx context.Context, fn func(context.Context) error) error {
	if a.config.Metrics.Listen == "" {
		return fn(ctx)
	}

	listener, err := net.Listen("tcp", a.config.Metrics.Listen)
	if err != nil {
		return fmt.Errorf("listen for metrics: %w", err)
	}
	a.metricsAddr = listener.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: metricsShutdownTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return fn(runCtx)
	})
	g.Go(func() error {
		a.logger.Info("serving metrics", "addr", a.metricsAddr)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
