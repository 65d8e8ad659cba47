package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/wfdscore/internal/config"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver"
	"github.com/MrSnakeDoc/wfdscore/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wfdscore/internal/index"
	"github.com/MrSnakeDoc/wfdscore/internal/logger"
	"github.com/MrSnakeDoc/wfdscore/internal/redis"
	"github.com/MrSnakeDoc/wfdscore/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/wfdscore/internal/store/redis"
	"github.com/MrSnakeDoc/wfdscore/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	resultIndex *index.ResultIndex
	liveScorer  *scheduler.LiveScorer
	gc          *scheduler.GarbageCollector
}

// New wires the scoring service from the environment.
// A configured but unreachable Redis is fatal; an unset WFD_REDIS_ADDR runs memory-only.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	resultIndex := index.NewResultIndex()

	var liveOpts *scheduler.LiveOptions
	if cfg.LiveEnabled() {
		liveOpts = &scheduler.LiveOptions{
			LogFile:     cfg.LogFile,
			Power:       cfg.Power,
			Delimiter:   cfg.Delimiter,
			SkipInvalid: cfg.SkipInvalid,
			Interval:    cfg.ReloadInterval,
		}
	}

	var (
		redisClient *goredis.Client
		store       *redisstore.Store
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)

		// Restore the last live score (if it matches the watched file) and cached results
		syncer := scheduler.NewRedisSyncer(store, resultIndex, liveOpts, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, starting empty",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, results are kept in memory only")
	}

	var (
		liveScorer    *scheduler.LiveScorer
		reloadTrigger chan struct{}
	)
	if liveOpts != nil {
		loggerClient.Info("log file configured, live scoring enabled",
			logger.String("file", cfg.LogFile),
			logger.Int("power", cfg.Power))
		reloadTrigger = make(chan struct{}, 1)
		liveScorer = scheduler.NewLiveScorer(*liveOpts, store, resultIndex, loggerClient, reloadTrigger)
	} else {
		loggerClient.Info("log file not configured, live scoring disabled")
	}

	gc := scheduler.NewGarbageCollector(
		resultIndex,
		store,
		loggerClient,
		cfg.GCInterval,
		cfg.ResultTTL,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:              loggerClient,
		StartTime:           time.Now(),
		Version:             version.Version,
		Commit:              version.Commit,
		BuildDate:           version.BuildDate,
		GoVersion:           version.GoVersion,
		TimeNow:             time.Now,
		AllowedHosts:        cfg.AllowedHosts,
		AllowedCIDRS:        cfg.AllowedCIDRS,
		TrustProxy:          cfg.TrustProxy,
		RedisClient:         redisClient,
		Store:               store,
		Index:               resultIndex,
		ResultTTL:           cfg.ResultTTL,
		MaxBodyBytes:        cfg.MaxBodyBytes,
		RateBurst:           cfg.RateBurst,
		RateRefillPerMinute: cfg.RateRefillPerMinute,
		LiveFile:            cfg.LogFile,
		ReloadTrigger:       reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		resultIndex: resultIndex,
		liveScorer:  liveScorer,
		gc:          gc,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting wfdscore v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("wfdscore %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start live scorer (scores the log file and starts periodic refresh)
	if a.liveScorer != nil {
		if err := a.liveScorer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start live scorer: %w", err)
		}
		a.logger.Info("live scorer started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("ttl", a.cfg.ResultTTL))

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

	if a.liveScorer != nil {
		a.liveScorer.Stop()
	}

	a.gc.Stop()

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

	a.logger.Info("✅ wfdscore stopped cleanly",
		logger.Int("results_cached", a.resultIndex.Count()))
	return nil
}
