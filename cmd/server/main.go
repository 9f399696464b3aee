package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skills-backend/internal/cache"
	"github.com/ignatzorin/skills-backend/internal/config"
	"github.com/ignatzorin/skills-backend/internal/db"
	"github.com/ignatzorin/skills-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/skills-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/skills-backend/internal/http/router"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/repository"
	"github.com/ignatzorin/skills-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Env)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Кэш снимка категорий: Redis, если задан адрес, иначе память процесса.
	var (
		categoryCache cache.Store
		cachePinger   httpHandlers.Pinger
	)
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Log.Fatalf("main: ошибка подключения к redis: %v", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				logger.Log.WithError(err).Warn("main: ошибка закрытия redis")
			}
		}()
		categoryCache = redisStore
		cachePinger = redisStore
	} else {
		categoryCache = cache.NewMemoryStore()
	}

	// Репозитории.
	catalogRepo := repository.NewCatalogRepository(dbConn)
	userSkillRepo := repository.NewUserSkillRepository(dbConn)
	ruleRepo := repository.NewSuggestionRuleRepository(dbConn)

	// Сервисы.
	trees := service.NewCategoryTreeStore(catalogRepo, categoryCache, cfg.CategoryCacheTTL)
	skillService := service.NewSkillService(catalogRepo, trees)
	recommendationService := service.NewRecommendationService(trees, catalogRepo, userSkillRepo)
	userSkillService := service.NewUserSkillService(userSkillRepo, catalogRepo)

	// Прогреваем кэш дерева категорий, не задерживая старт.
	goroutine.SafeGoWithContext(ctx, logger.Log, func(ctx context.Context) {
		if _, err := trees.Load(ctx); err != nil {
			logger.Log.WithError(err).Warn("main: не удалось прогреть кэш категорий")
		}
	})

	// HTTP хэндлеры.
	handlers := httpRouter.Handlers{
		Health:          httpHandlers.NewHealthHandler(dbConn, cachePinger),
		Skills:          httpHandlers.NewSkillHandler(skillService, recommendationService),
		Categories:      httpHandlers.NewCategoryHandler(skillService),
		UserSkills:      httpHandlers.NewUserSkillHandler(userSkillService),
		SuggestionRules: httpHandlers.NewSuggestionRuleHandler(ruleRepo),
	}
	if cfg.IsDevelopment() {
		handlers.Seed = httpHandlers.NewSeedHandler(service.NewSeedService(dbConn, catalogRepo, trees))
	}

	engine := httpRouter.SetupRouter(cfg, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(logger.Log, func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Warn("main: ошибка закрытия базы")
	}
}
