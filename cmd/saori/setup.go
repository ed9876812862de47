package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sandevgo/saori/internal/config"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/providers/cache"
	"github.com/sandevgo/saori/internal/providers/llm"
	"github.com/sandevgo/saori/internal/service/chat"
	"github.com/sandevgo/saori/internal/service/command"
	"github.com/sandevgo/saori/internal/service/learning"
	"github.com/sandevgo/saori/internal/service/metrics"
	"github.com/sandevgo/saori/internal/service/responder"
	"github.com/sandevgo/saori/internal/service/state"
	"github.com/sandevgo/saori/internal/storage/postgres"
	"github.com/sandevgo/saori/internal/storage/sqlite"
	"github.com/sandevgo/saori/internal/transport/cli"
	"github.com/sandevgo/saori/internal/transport/rest"
	"github.com/sandevgo/saori/internal/transport/telegram"
	"github.com/sandevgo/saori/pkg/log"
	"github.com/sandevgo/saori/pkg/retry"
	"github.com/sandevgo/saori/pkg/srv"
)

type storage struct {
	learned core.LearnedRepository
	tags    core.TagRepository
	close   func() error
}

// NewServices wires everything behind "saori start". Services shut down in
// slice order: transports first, then pending learning writes, then the
// cache and store they write to.
func NewServices(ctx context.Context, onExit func()) []srv.Service {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)

	// 2. Storage
	store, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// 3. Response cache
	responseCache, closeCache, err := initCache(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize response cache")
	}

	// 4. AI Provider. A missing key is served as a 500 per request instead
	// of refusing to start.
	aiProvider, configErr := llm.NewProvider(ctx, providerCfg)
	if configErr != nil {
		logger.Error().Err(configErr).Msg("llm provider is not configured, requests will fail")
	}

	// 5. Learning and response selection
	m := metrics.New()
	extractor := learning.NewExtractor(store.learned, m)

	resp := responder.New(appCfg, responder.Deps{
		Cache:     responseCache,
		Learned:   store.learned,
		Tags:      store.tags,
		AI:        aiProvider,
		Learner:   extractor,
		Metrics:   m,
		ConfigErr: configErr,
	})

	// 6. Transports
	router := rest.NewRouter(rest.NewHandler(resp), rest.RouterConfig{
		Debug:   isDebug(),
		Logger:  logger,
		Metrics: m.Handler(),
	})
	services := []srv.Service{rest.NewServer(appCfg.ListenAddr, router)}

	transports, err := initTransports(ctx, appCfg, store, resp, onExit)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return append(services,
		extractor,
		srv.NewCleanup(closeCache),
		srv.NewCleanup(store.close),
	)
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*storage, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite, "":
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, err
		}
		return &storage{
			learned: sqlite.NewLearnedRepo(db),
			tags:    sqlite.NewTagRepo(db),
			close:   db.Close,
		}, nil

	case config.StorePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%w: SAORI_POSTGRES_DSN", core.ErrConfigurationMissing)
		}

		var pool *pgxpool.Pool
		err := retry.NewDefaultRetrier().Named("postgres").Do(ctx, func(ctx context.Context) error {
			var err error
			pool, err = postgres.NewPool(ctx, cfg.PostgresDSN)
			return err
		})
		if err != nil {
			return nil, err
		}
		return &storage{
			learned: postgres.NewLearnedRepo(pool),
			tags:    postgres.NewTagRepo(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", core.ErrInvalidInput, cfg.StoreDriver)
	}
}

func initCache(ctx context.Context, cfg *config.AppConfig) (core.ResponseCache, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory, "":
		return cache.NewMemoryCache(cfg.GetCacheTTL()), func() error { return nil }, nil

	case config.CacheRedis:
		if cfg.RedisURL == "" {
			return nil, nil, fmt.Errorf("%w: SAORI_REDIS_URL", core.ErrConfigurationMissing)
		}

		var rc *cache.RedisCache
		err := retry.NewDefaultRetrier().Named("redis").Do(ctx, func(ctx context.Context) error {
			var err error
			rc, err = cache.NewRedisCache(ctx, cfg.RedisURL, cfg.GetCacheTTL())
			return err
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown cache backend %q", core.ErrInvalidInput, cfg.CacheBackend)
	}
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	store *storage,
	resp *responder.Responder,
	onExit func(),
) ([]srv.Service, error) {
	var services []srv.Service
	if !cfg.EnableTelegram && !cfg.EnableCLI {
		return services, nil
	}

	sessions := state.NewSessions(core.ModeQuick)
	commands := command.New(command.NewCommands(cfg, sessions, store.learned))
	chatSvc := chat.New(commands, resp, sessions)

	if cfg.EnableTelegram {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), chatSvc)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(cfg, chatSvc, onExit)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
