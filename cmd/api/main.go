package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/scorekeeper-api/internal/config"
	"github.com/yourusername/scorekeeper-api/internal/domain/repository"
	"github.com/yourusername/scorekeeper-api/internal/handler"
	"github.com/yourusername/scorekeeper-api/internal/logging"
	"github.com/yourusername/scorekeeper-api/internal/middleware"
	pgRepo "github.com/yourusername/scorekeeper-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/scorekeeper-api/internal/repository/redis"
	"github.com/yourusername/scorekeeper-api/internal/service"
	ws "github.com/yourusername/scorekeeper-api/internal/websocket"
	"github.com/yourusername/scorekeeper-api/pkg/database"
)

func main() {
	// До загрузки конфигурации логируем по умолчанию, уровень берём из окружения
	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	logger.Info("loading config", "path", configPath)

	cfg, err := config.Load(configPath, logger)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	logger = logging.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	// Контекст приложения: отменяется при остановке и гасит фоновые горутины
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Fatal("failed to connect to database", "err", err)
	}
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("failed to migrate database", "err", err)
	}

	// Redis необязателен: без него нет кеша, ограничения частоты и рассылки между экземплярами
	var redisClient redis.UniversalClient
	if client, err := database.NewUniversalRedisClient(ctx, cfg.Redis); err != nil {
		logger.Warn("redis unavailable, running without cache, rate limit and relay", "err", err)
	} else {
		redisClient = client
		defer redisClient.Close()
		logger.Info("connected to redis", "mode", cfg.Redis.Mode)
	}

	// Репозитории
	playerRepo := pgRepo.NewPlayerRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	gameRepo := pgRepo.NewGameRepo(db)
	participantRepo := pgRepo.NewParticipantRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)
	statsRepo := pgRepo.NewStatsRepo(db)

	var cacheRepo repository.CacheRepository
	if redisClient != nil && cfg.Cache.Enabled {
		repo, err := redisRepo.NewCacheRepo(redisClient, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal("failed to initialize cache repository", "err", err)
		}
		cacheRepo = repo
	}
	resultCache := service.NewResultCache(cacheRepo, cfg.Cache.ViewsTTL(), cfg.Cache.StatsTTL(), logger)

	// WebSocket табло. Без него события никуда не публикуются.
	var (
		wsManager *ws.Manager
		events    service.EventPublisher
	)
	if cfg.WebSocket.Enabled {
		hub := ws.NewHub(cfg.WebSocket.BroadcastBuffer, logger)

		var relay ws.Relay
		if redisClient != nil && cfg.WebSocket.RelayChannel != "" {
			redisRelay, err := ws.NewRedisRelay(redisClient, cfg.WebSocket.RelayChannel, logger)
			if err != nil {
				logger.Warn("websocket relay disabled", "err", err)
			} else {
				relay = redisRelay
			}
		}

		wsManager = ws.NewManager(hub, relay, logger)
		// Run запускает и хаб, и подписку на relay
		go wsManager.Run(ctx)
		events = wsManager
	}

	// Сервисы
	stats := service.NewStatsAggregator(playerRepo, scoreRepo, statsRepo, resultCache, cfg.Scoring.FanOutLimit, logger)
	ledger := service.NewScoreLedger(gameRepo, participantRepo, categoryRepo, scoreRepo, events, logger)
	lifecycle := service.NewGameLifecycle(gameRepo, participantRepo, stats, resultCache, events, logger)
	views := service.NewGameViewAssembler(gameRepo, participantRepo, scoreRepo, stats, resultCache, cfg.Scoring.FanOutLimit, logger)
	playerService := service.NewPlayerService(playerRepo, stats, resultCache, logger)
	categoryService := service.NewCategoryService(categoryRepo)

	handlers := handler.Handlers{
		Players:    handler.NewPlayerHandler(playerService, logger),
		Categories: handler.NewCategoryHandler(categoryService, logger),
		Games:      handler.NewGameHandler(lifecycle, ledger, views, logger),
		Health:     handler.NewHealthHandler(db, redisClient, wsManager),
	}
	if wsManager != nil {
		handlers.WS = handler.NewWSHandler(wsManager, cfg.CORS.AllowedOrigins, cfg.WebSocket.ClientSendBuffer, logger)
	}

	var writeGuards []gin.HandlerFunc
	if cfg.RateLimit.Enabled && redisClient != nil {
		limiter := middleware.NewRateLimiter(middleware.NewRedisCounterStore(redisClient), logger)
		writeGuards = append(writeGuards, limiter.Limit(middleware.WriteRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())))
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))

	// Release: не доверяем прокси-заголовкам; за балансировщиком сюда добавляется его адрес
	trustedProxies := []string{"127.0.0.1", "::1"}
	if cfg.Server.Mode == gin.ReleaseMode {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		logger.Warn("failed to set trusted proxies", "err", err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	handler.RegisterRoutes(router, handlers, writeGuards...)

	// Тайм-ауты защищают от медленных клиентов
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Останавливаем хаб и подписку на relay до закрытия HTTP
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server exited properly")
}
