package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonwraymond/toolalgo/config"
	"github.com/jonwraymond/toolalgo/registry"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the operations over stdio or HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	def := config.Default()
	f := cmd.Flags()
	f.StringVar(&opts.cfg.Addr, "addr", def.Addr, "listen address for the http transport")
	f.StringVar(&opts.cfg.Transport, "transport", def.Transport, "stdio or http")
	f.StringVar(&opts.cfg.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	f.BoolVar(&opts.cfg.LogJSON, "log-json", def.LogJSON, "emit JSON log lines")
	f.Float64Var(&opts.cfg.RateLimit, "rate-limit", def.RateLimit, "HTTP requests per second, 0 for unlimited")
	f.IntVar(&opts.cfg.BatchWorkers, "batch-workers", def.BatchWorkers, "tools/batch worker count, 0 for GOMAXPROCS")
	f.StringVar(&opts.cfg.GeometryURL, "geometry-url", def.GeometryURL, "MCP endpoint serving pointat and srf4pt")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	// stdout carries the protocol on stdio, so logs go to stderr.
	reg, err := newRegistry(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = reg.Close() }()

	if err := reg.Start(ctx); err != nil {
		return err
	}

	switch cfg.Transport {
	case config.TransportHTTP:
		handler, err := newHandler(ctx, reg, cfg)
		if err != nil {
			return err
		}
		return serveHTTP(ctx, cfg.Addr, handler)
	default:
		return serveStdio(ctx, reg)
	}
}

// serveStdio returns when stdin closes or ctx ends. A read blocked on stdin
// is abandoned on shutdown.
func serveStdio(ctx context.Context, reg *registry.Registry) error {
	errc := make(chan error, 1)
	go func() { errc <- registry.ServeStdio(ctx, reg) }()
	select {
	case err := <-errc:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		return nil
	}
}

// newHandler mounts every HTTP endpoint.
func newHandler(ctx context.Context, reg *registry.Registry, cfg config.Config) (http.Handler, error) {
	var httpOpts []registry.HTTPOption
	if cfg.RateLimit > 0 {
		httpOpts = append(httpOpts, registry.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)))
	}

	sdkServer, err := registry.NewMCPServer(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("build sdk server: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", registry.ServeHTTP(reg, httpOpts...))
	mux.Handle("/sse", registry.ServeSSE(reg, httpOpts...))
	mux.Handle("/mcp/stream", registry.NewStreamableHandler(sdkServer))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := reg.HealthCheck(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux, nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
