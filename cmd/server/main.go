package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/topictube/topictube-go/internal/config"
	"github.com/mathieu-neron/topictube/topictube-go/internal/db"
	"github.com/mathieu-neron/topictube/topictube-go/internal/handler"
	"github.com/mathieu-neron/topictube/topictube-go/internal/metrics"
	"github.com/mathieu-neron/topictube/topictube-go/internal/middleware"
	"github.com/mathieu-neron/topictube/topictube-go/internal/repository"
	"github.com/mathieu-neron/topictube/topictube-go/internal/router"
	"github.com/mathieu-neron/topictube/topictube-go/internal/service"
	"github.com/mathieu-neron/topictube/topictube-go/internal/youtube"
)

type stores struct {
	channels service.ChannelStore
	videos   service.VideoStore
	ping     handler.Pinger
	pool     *pgxpool.Pool
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	log := middleware.Logger

	if cfg.StoreDriver == config.StoreSQLite {
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store opened")
		return &stores{
			channels: repository.NewSQLiteChannelRepo(sqlDB),
			videos:   repository.NewSQLiteVideoRepo(sqlDB),
			ping:     sqlDB.PingContext,
			close:    func() { closeSQL(sqlDB) },
		}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		channels: repository.NewChannelRepo(pool),
		videos:   repository.NewVideoRepo(pool),
		ping:     pool.Ping,
		pool:     pool,
		close:    pool.Close,
	}, nil
}

func closeSQL(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		middleware.Logger.Warn().Err(err).Msg("sqlite close failed")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		middleware.InitLogger("info", "topictube-go")
		middleware.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	middleware.InitLogger(cfg.LogLevel, "topictube-go")
	log := middleware.Logger

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer st.close()

	cache := service.NewCacheService(cfg.RedisURL, cfg.GroupsCacheTTL, log)
	defer cache.Close()

	metrics.Register(st.pool)

	client := youtube.NewClient(youtube.ClientConfig{
		BaseURL: cfg.YouTubeBaseURL,
		Timeout: cfg.HTTPTimeout,
		RPS:     cfg.OutboundRPS,
	}, log)
	resolver := youtube.NewResolver(client, cfg.ResolveCacheTTL, log)

	topicSvc := service.NewTopicService(st.videos, st.channels, cfg.Topic(), log)
	groupSvc := service.NewGroupService(st.videos, st.channels, cache, log)
	ingestSvc := service.NewIngestService(st.channels, st.videos, resolver, client, topicSvc, groupSvc, cfg.MaxVideosPerChannel, log)

	app := fiber.New(fiber.Config{
		AppName:      "TopicTube API",
		ServerHeader: "TopicTube",
	})

	router.Setup(app, &router.Handlers{
		Ingest:  handler.NewIngestHandler(ingestSvc, cfg.IngestBatchSize, log),
		Video:   handler.NewVideoHandler(service.NewVideoService(st.videos), groupSvc),
		Channel: handler.NewChannelHandler(service.NewChannelService(st.channels)),
		Health:  handler.NewHealthHandler(st.ping, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Str("store", cfg.StoreDriver).Msg("TopicTube Go backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
