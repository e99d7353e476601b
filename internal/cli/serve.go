package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/arbor/internal/logging"
	httpadapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
)

// ServeOptions configures the HTTP server command.
type ServeOptions struct {
	Options

	Addr          string
	DefaultSchema string
	Metrics       bool
}

// Serve runs the HTTP gateway until ctx is done.
func Serve(ctx context.Context, opts ServeOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	// Servers log requests and lifecycle at info even without --debug.
	logger := logging.New(slog.LevelInfo)
	if opts.Debug {
		logger = createLogger(true)
	}

	b, err := OpenBackend(opts.Options)
	if err != nil {
		return err
	}
	defer b.Close()

	handler, err := newHTTPHandler(ctx, opts, b, logger)
	if err != nil {
		return err
	}
	return httpadapter.Serve(ctx, opts.Addr, handler, logger)
}

// newHTTPHandler wires the engine to the HTTP gateway. Lifecycle hooks feed the SSE
// stream and, when enabled, the Prometheus collectors.
func newHTTPHandler(ctx context.Context, opts ServeOptions, b *Backend, logger *slog.Logger) (http.Handler, error) {
	streams := httpadapter.NewStreamManager(logger)
	hooks := []domain.LifecycleHooks{{OnChange: streams.Publish}}

	var metrics *observability.Metrics
	if opts.Metrics {
		metrics = observability.NewMetrics()
		hooks = append(hooks, metrics.Hooks())
	}

	eng, _, err := createEngine(ctx, opts.Options, b, logger, observability.Combine(hooks...))
	if err != nil {
		return nil, err
	}

	serverOpts := []httpadapter.Option{
		httpadapter.WithStreams(streams),
		httpadapter.WithLogger(logger),
		httpadapter.WithDefaultSchema(opts.DefaultSchema),
	}
	if metrics != nil {
		serverOpts = append(serverOpts, httpadapter.WithMetricsHandler(metrics.Handler()))
	}

	srv, err := httpadapter.NewServer(eng, serverOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create http server: %w", err)
	}
	return srv.Handler(), nil
}
