package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/openjobs/openjobs/internal/config"
	"github.com/openjobs/openjobs/internal/database"
	"github.com/openjobs/openjobs/internal/router"
)

func main() {
	// 1. Configuration (reads .env if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Logging
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// 3. Database
	db, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalw("database connection failed", "err", err)
	}
	if err := database.Migrate(db); err != nil {
		sugar.Fatalw("migration failed", "err", err)
	}
	sugar.Info("database connection established")

	// 4. Router with all middleware and handlers wired in
	engine, err := router.Setup(cfg, db, sugar)
	if err != nil {
		sugar.Fatalw("router setup failed", "err", err)
	}

	sugar.Infow("server starting", "addr", cfg.Addr)
	if err := engine.Run(cfg.Addr); err != nil {
		sugar.Fatalw("server failed", "err", err)
	}
}
