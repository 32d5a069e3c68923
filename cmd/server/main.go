package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/config"
	"github.com/yukikurage/supertask-api/internal/constants"
	"github.com/yukikurage/supertask-api/internal/database"
	"github.com/yukikurage/supertask-api/internal/handlers"
	"github.com/yukikurage/supertask-api/internal/repository"
	"github.com/yukikurage/supertask-api/internal/router"
	"github.com/yukikurage/supertask-api/internal/services"
	"github.com/yukikurage/supertask-api/internal/translator"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	if err := translator.Init(); err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("failed to close database connection", zap.Error(err))
			}
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("failed to create session store", zap.String("store", cfg.SessionStore), zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid time zone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	clock := services.NewClock(loc)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	provisioner := services.NewProvisioner(userRepo, categoryRepo)
	authService := services.NewAuthService(userRepo, provisioner)
	categoryService := services.NewCategoryService(categoryRepo)
	taskService := services.NewTaskService(taskRepo, categoryRepo, clock)
	dashboardService := services.NewDashboardService(taskRepo, categoryRepo, clock)
	quoteService := services.NewQuoteService(cfg.QuoteURL, cfg.QuoteTimeout)

	r := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, tokenService),
		Task:      handlers.NewTaskHandler(taskService),
		Category:  handlers.NewCategoryHandler(categoryService),
		Dashboard: handlers.NewDashboardHandler(dashboardService, quoteService),
		Health:    handlers.NewHealthHandler(db),
	}, router.Dependencies{
		Logger:       logger,
		SessionStore: store,
		Tokens:       tokenService,
		TaskRepo:     taskRepo,
		CategoryRepo: categoryRepo,
	})

	// Start server
	logger.Info("starting server", zap.String("addr", cfg.HTTPAddress))
	if err := r.Run(cfg.HTTPAddress); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = atomicLevel
	return zapCfg.Build()
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreCookie:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	}

	// Secure cookies only in release mode (HTTPS)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
