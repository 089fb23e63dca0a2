package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/mcp"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Dir       string
	Transport string
	Port      int
	Debug     bool
}

// ServeMCP exposes the engine and the catalog as MCP tools.
// Logs always go to Stderr so they never corrupt JSON-RPC on Stdout.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	catalog, err := openCatalog(opts.Dir)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(createEngine(opts.Debug, logger), catalog, mcp.WithLogger(logger))

	switch opts.Transport {
	case TransportStdio, "":
		logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("starting MCP server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (use stdio or sse)", opts.Transport)
	}
}
