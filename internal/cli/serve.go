package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/internal/logging"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Dir      string
	Port     string
	Validate bool
	Debug    bool

	RedisAddr   string
	RedisPrefix string
	RedisTTL    time.Duration

	Output io.Writer
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	handler, closeStore, err := newServerHandler(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(opts.Output, "Starting automata server on %s", srv.Addr)
		if opts.Dir != "" {
			printSystemMessage(opts.Output, "Serving catalog from: %s", opts.Dir)
		}
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		printSystemMessage(opts.Output, "Server stopped gracefully")
		return nil
	}
}

// newServerHandler wires the store, metrics, event stream and catalog
// behind the HTTP handler. The returned func releases the store.
func newServerHandler(ctx context.Context, opts ServeOptions, logger *slog.Logger) (http.Handler, func() error, error) {
	metrics := observability.NewMetrics()
	engine := createEngine(opts.Debug, logger, metrics.Hooks())
	streams := httpAdapter.NewStreamManager(logger)

	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithChangeHook(streams.Publish),
	}

	var store ports.AutomatonStore
	closeStore := func() error { return nil }
	if opts.RedisAddr != "" {
		var storeOpts []redis.Option
		if opts.RedisPrefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(opts.RedisPrefix))
		}
		if opts.RedisTTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(opts.RedisTTL))
		}
		rs := redis.New(opts.RedisAddr, "", 0, storeOpts...)
		if err := rs.Client().Ping(ctx).Err(); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		logger.Info("using redis store", "addr", opts.RedisAddr)

		store = rs
		closeStore = rs.Close
		sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(rs.Client(), lockPrefix(opts.RedisPrefix))))
	} else {
		store = memory.NewStore()
	}

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithSessions(session.NewManager(store, sessionOpts...)),
		httpAdapter.WithMetrics(metrics.Handler()),
	}
	if opts.Dir != "" {
		catalog, err := openCatalog(opts.Dir)
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		handlerOpts = append(handlerOpts, httpAdapter.WithCatalog(catalog))
	}
	if opts.Validate {
		handlerOpts = append(handlerOpts, httpAdapter.WithRequestValidation())
	}

	return httpAdapter.NewHandler(engine, handlerOpts...), closeStore, nil
}

func lockPrefix(prefix string) string {
	if prefix == "" {
		return redis.DefaultLockPrefix
	}
	return prefix
}
