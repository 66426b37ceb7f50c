package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marketboard/internal/config"
	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/httpserver"
	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/index"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/market"
	"github.com/MrSnakeDoc/marketboard/internal/redis"
	"github.com/MrSnakeDoc/marketboard/internal/scheduler"
	"github.com/MrSnakeDoc/marketboard/internal/sources/seed"
	"github.com/MrSnakeDoc/marketboard/internal/store"
	filestore "github.com/MrSnakeDoc/marketboard/internal/store/file"
	redisstore "github.com/MrSnakeDoc/marketboard/internal/store/redis"
	"github.com/MrSnakeDoc/marketboard/internal/version"
)

// App owns the persistence slot and the loaded listing service.
type App struct {
	cfg         *config.Config
	logger      logger.Logger
	slot        store.Slot
	memIndex    *index.MemoryIndex
	market      *market.Service
	redisClient *goredis.Client
	reload      chan struct{}
	started     time.Time
}

// New opens the configured slot and loads the board from it. With the redis
// backend it fails when the server cannot be reached within
// REDIS_CONNECT_TIMEOUT.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   loggerClient,
		memIndex: index.NewMemoryIndex(),
		reload:   make(chan struct{}, 1),
		started:  time.Now(),
	}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(ctx, redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		a.slot = redisstore.New(client, redisstore.ListingsKey(cfg.StoreKey))
	default:
		a.slot = filestore.New(cfg.StorePath)
	}
	loggerClient.Debug("slot selected", logger.String("slot", a.slot.Name()))

	st := store.New(a.slot, sampleFunc(cfg.SeedFile, loggerClient), loggerClient)
	a.market = market.New(st, a.memIndex, loggerClient, nil)
	a.market.Load(ctx)

	return a, nil
}

// sampleFunc returns the seed listings, falling back to the embedded sample
// when the seed file cannot be used.
func sampleFunc(path string, log logger.Logger) func() []domain.Listing {
	loader := seed.NewLoader(path)
	return func() []domain.Listing {
		listings, err := loader.Load()
		if err != nil {
			log.Warn("seed file unusable, using embedded sample",
				logger.String("file", path), logger.Error(err))
			return seed.Default()
		}
		return listings
	}
}

// Market is the loaded listing service.
func (a *App) Market() *market.Service { return a.market }

// Slot is the persistence slot in use.
func (a *App) Slot() store.Slot { return a.slot }

// Deps builds the HTTP dependencies for this app.
func (a *App) Deps() deps.Deps {
	return deps.Deps{
		Logger:         a.logger,
		StartTime:      a.started,
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		AllowedHosts:   a.cfg.AllowedHosts,
		AllowedCIDRS:   a.cfg.AllowedCIDRS,
		TrustProxy:     a.cfg.TrustProxy,
		Market:         a.market,
		Slot:           a.slot,
		MemoryIndex:    a.memIndex,
		Backend:        a.cfg.StoreBackend,
		MaxImportBytes: a.cfg.MaxImportBytes,
		ReloadTrigger:  a.reload,
		WriteBurst:     a.cfg.WriteBurst,
		WritePerMin:    a.cfg.WritePerMin,
	}
}

// Serve runs the HTTP API and the slot reloader until ctx is cancelled, then
// shuts the server down within ShutdownTimeout.
func (a *App) Serve(ctx context.Context) error {
	server := httpserver.New(a.cfg, a.logger, a.Deps())

	a.logger.Infof("🚀 Starting marketboard %s on %s", version.Version, server.Addr())
	a.logger.Infof("marketboard %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	reloader := scheduler.NewSlotReloader(a.market, a.logger, a.cfg.ReloadInterval, a.reload)
	reloader.Start(ctx)
	defer reloader.Stop()
	a.logger.Info("slot reloader started",
		logger.String("slot", a.slot.Name()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return nil
}

// Run serves until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Close releases the redis connection, if any.
func (a *App) Close() error {
	if a.redisClient == nil {
		return nil
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
		return err
	}
	a.logger.Info("✅ Redis closed cleanly")
	return nil
}
