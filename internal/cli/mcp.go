package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/mcp"
	"github.com/aretw0/arbor/pkg/domain"
)

// Supported MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the MCP server command.
type MCPOptions struct {
	Options

	Transport string
	Port      int
}

// ServeMCP exposes the engine as MCP tools. Logs always go to Stderr so they never
// corrupt the JSON-RPC stream on Stdout.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Transport != "" && opts.Transport != TransportStdio && opts.Transport != TransportSSE {
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", opts.Transport, TransportStdio, TransportSSE)
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	b, err := OpenBackend(opts.Options)
	if err != nil {
		return err
	}
	defer b.Close()

	eng, _, err := createEngine(ctx, opts.Options, b, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	srv := mcp.NewServer(eng, mcp.WithLogger(logger))

	switch opts.Transport {
	case "", TransportStdio:
		logger.Info("Starting MCP server (stdio)")
		return srv.ServeStdio()
	default:
		logger.Info("Starting MCP server (SSE)", "port", opts.Port)
		return srv.ServeSSE(ctx, opts.Port)
	}
}
