package main

import (
	"context"

	"go.uber.org/zap"

	"arcadestore/internal/config"
	"arcadestore/internal/db"
	"arcadestore/internal/model"
	"arcadestore/internal/repository"
	"arcadestore/internal/seed"
)

// Standalone seeding entrypoint. The server seeds at boot as well; this
// exists for running the bootstrap against a database without starting the
// API.
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

	seeder := seed.New(
		repository.NewUserRepository(gormDB),
		repository.NewGameRepository(gormDB),
		logger,
		cfg.AdminEmail,
		cfg.AdminPass,
		cfg.BcryptCost,
	)
	if err := seeder.Run(context.Background()); err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	logger.Info("seed completed")
}
