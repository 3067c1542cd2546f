package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
//
//	collector := metrics.NewCollector(cfg, nil)
//	http.Handle("/metrics", collector.Handler())
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// Serve serves the metrics endpoint on the configured address and path
// until ctx is cancelled. Each mount function may add routes of its own
// to the same server.
func (c *Collector) Serve(ctx context.Context, mount ...func(*http.ServeMux)) error {
	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())
	for _, m := range mount {
		m(mux)
	}

	server := &http.Server{
		Addr:              c.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := slog.Default().With("component", "telemetry.metrics")
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "address", c.config.ListenAddress, "path", c.config.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
