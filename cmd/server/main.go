package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "arcadestore/docs" // swagger docs

	"arcadestore/internal/auth"
	"arcadestore/internal/cache"
	"arcadestore/internal/config"
	"arcadestore/internal/db"
	"arcadestore/internal/handler"
	"arcadestore/internal/middleware"
	"arcadestore/internal/model"
	"arcadestore/internal/repository"
	"arcadestore/internal/router"
	"arcadestore/internal/seed"
	"arcadestore/internal/service"
)

// @title ArcadeStore API
// @version 1.0
// @description Online storefront for small browser games: catalog, purchases, and per-game leaderboards.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Game{},
		&model.Purchase{},
		&model.Score{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	gameRepo := repository.NewGameRepository(gormDB)
	purchaseRepo := repository.NewPurchaseRepository(gormDB)
	scoreRepo := repository.NewScoreRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpires)
	authMW := middleware.NewAuthMiddleware(jwtService, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	catalogService := service.NewCatalogService(gameRepo, cacheClient)
	commerceService := service.NewCommerceService(userRepo, gameRepo, purchaseRepo, scoreRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(catalogService)
	commerceHandler := handler.NewCommerceHandler(commerceService)

	// Bootstrap seeding completes before the listener accepts traffic.
	seeder := seed.New(userRepo, gameRepo, logger, cfg.AdminEmail, cfg.AdminPass, cfg.BcryptCost)
	if err := seeder.Run(context.Background()); err != nil {
		logger.Fatal("bootstrap seeding", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, authMW, authHandler, gameHandler, commerceHandler)

	addr := ":" + cfg.ServerPort
	logger.Info("server starting", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
