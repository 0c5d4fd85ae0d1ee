package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/flarehq/flare/internal/catalog"
	"github.com/flarehq/flare/internal/config"
	"github.com/flarehq/flare/internal/discovery"
	"github.com/flarehq/flare/internal/httpserver"
	"github.com/flarehq/flare/internal/httpserver/deps"
	"github.com/flarehq/flare/internal/logger"
	"github.com/flarehq/flare/internal/redis"
	"github.com/flarehq/flare/internal/scheduler"
	"github.com/flarehq/flare/internal/store/rediscache"
	"github.com/flarehq/flare/internal/store/sqlite"
	"github.com/flarehq/flare/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlite.Store
	redisClient *goredis.Client
	syncer      *scheduler.DiscoverySyncer
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	loggerClient.Infof("Opening database at %s", cfg.DatabasePath)
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Redis snapshot cache is optional - no addr means no cache
	var redisClient *goredis.Client
	var cache *rediscache.Cache
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Warnf("Redis unavailable, running without snapshot cache: %v", err)
			redisClient = nil
		} else {
			cache = rediscache.New(redisClient, cfg.CacheTTL)
			loggerClient.Info("Redis snapshot cache initialized")
		}
	} else {
		loggerClient.Info("Redis not configured, snapshot cache disabled")
	}

	// Discovery adapters. Both are constructed unconditionally and
	// gated at runtime by the persisted settings flags.
	docker := discovery.NewDockerAdapter(cfg.DockerSocket, cfg.AdapterTimeout, loggerClient)

	var kubernetes discovery.Adapter
	if lister, lerr := discovery.NewInClusterLister(); lerr != nil {
		loggerClient.Info("not running in a cluster, kubernetes discovery unavailable",
			logger.Error(lerr))
	} else {
		kubernetes = discovery.NewKubernetesAdapter(lister, cfg.AdapterTimeout, loggerClient)
	}

	catalogService := catalog.NewService(st, cache, docker, kubernetes, loggerClient)

	// Manual refresh trigger channel (wired to POST /api/settings/refresh)
	var refreshTrigger chan struct{}
	var syncer *scheduler.DiscoverySyncer
	if cfg.SyncInterval > 0 {
		refreshTrigger = make(chan struct{}, 1)
		syncer = scheduler.NewDiscoverySyncer(catalogService, loggerClient, cfg.SyncInterval, refreshTrigger)
	} else {
		loggerClient.Info("sync interval not configured, periodic discovery disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Catalog:        catalogService,
		RefreshTrigger: refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       st,
		redisClient: redisClient,
		syncer:      syncer,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Flare v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Flare %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.syncer != nil {
		a.syncer.Start(ctx)
		a.logger.Info("discovery syncer started",
			logger.Duration("interval", a.cfg.SyncInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.syncer != nil {
		a.syncer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("✅ Flare stopped cleanly")
	return nil
}
