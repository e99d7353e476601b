package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/demo"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/adapters/loam"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/persistence/middleware"
	"github.com/aretw0/arbor/pkg/ports"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout flow UI).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelWarn)
}

// Backend is an opened session store with its optional distributed locker.
type Backend struct {
	Store  ports.StateStore
	Locker ports.DistributedLocker

	closers []func() error
}

// Close releases the connections held by the backend.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// OpenBackend opens the configured store and wraps it with encryption when
// ARBOR_ENCRYPTION_KEY is set.
func OpenBackend(opts Options) (*Backend, error) {
	b := &Backend{}

	switch opts.Store {
	case "", StoreMemory:
		b.Store = memory.NewStore()
	case StoreFile:
		b.Store = file.New(opts.SessionsDir)
	case StoreRedis:
		cfg, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(cfg)
		b.Store = redis.NewFromClient(client, redis.WithTTL(opts.SessionTTL))
		b.Locker = redis.NewLocker(client, "arbor:lock:")
		b.closers = append(b.closers, client.Close)
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Store)
	}

	mw, err := encryptionFromEnv(opts.AllowPlaintext)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if mw != nil {
		b.Store = middleware.Chain(b.Store, mw)
	}
	return b, nil
}

func encryptionFromEnv(allowPlaintext bool) (middleware.Middleware, error) {
	encoded := os.Getenv(EnvEncryptionKey)
	if encoded == "" {
		return nil, nil
	}
	active, err := middleware.ParseKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvEncryptionKey, err)
	}
	cfg := middleware.EncryptionConfig{
		ActiveKey:      active,
		AllowPlaintext: allowPlaintext,
	}
	if fallback := os.Getenv(EnvFallbackKey); fallback != "" {
		key, err := middleware.ParseKey(fallback)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvFallbackKey, err)
		}
		cfg.FallbackKeys = [][]byte{key}
	}
	return middleware.NewEncryptionMiddleware(cfg)
}

// createEngine initializes an engine on b and registers the configured schemas.
// The returned source is non-nil when schemas come from a directory, so callers can
// watch it.
func createEngine(ctx context.Context, opts Options, b *Backend, logger *slog.Logger, hooks domain.LifecycleHooks) (*arbor.Engine, *loam.Source, error) {
	engineOpts := []arbor.Option{
		arbor.WithStore(b.Store),
		arbor.WithLogger(logger),
		arbor.WithLifecycleHooks(hooks),
	}
	if b.Locker != nil {
		engineOpts = append(engineOpts, arbor.WithLocker(b.Locker))
	}
	if opts.MaxInputSize > 0 {
		engineOpts = append(engineOpts, arbor.WithMaxInputSize(opts.MaxInputSize))
	}

	eng, err := arbor.New(engineOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}

	src, err := loadSchemas(ctx, eng, opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return eng, src, nil
}

// loadSchemas registers schemas from --file, --dir or, when neither is set, the
// built-in demo.
func loadSchemas(ctx context.Context, eng *arbor.Engine, opts Options, logger *slog.Logger) (*loam.Source, error) {
	switch {
	case opts.File != "":
		def, err := dsl.LoadFile(opts.File)
		if err != nil {
			return nil, err
		}
		if err := eng.RegisterDefinition(def); err != nil {
			return nil, err
		}
		logger.Debug("Schema loaded", "file", opts.File, "schema", def.Name)
		return nil, nil

	case opts.Dir != "":
		src, err := loam.Open(opts.Dir)
		if err != nil {
			return nil, err
		}
		n, err := eng.LoadSource(ctx, src)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("no schema definitions found in %s", opts.Dir)
		}
		logger.Debug("Schemas loaded", "dir", opts.Dir, "count", n)
		return src, nil

	default:
		if err := demo.Register(eng.Registry()); err != nil {
			return nil, err
		}
		logger.Debug("No schema source configured, using demo", "schema", demo.SignupName)
		return nil, nil
	}
}
