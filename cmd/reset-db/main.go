package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wanderquest-backend/shared/config"
	"wanderquest-backend/shared/database"
	applogger "wanderquest-backend/shared/logger"
	"wanderquest-backend/shared/utils/cache"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Reset failed")
	}
	log.Info().Msg("Reset completed, run cmd/seed to recreate tables and the demo user")
}

func run() error {
	cfg := config.LoadConfig()
	applogger.Init(cfg.LogLevel, cfg.AppEnv)

	log.Info().Msg("Starting database reset")

	db, err := gorm.Open(postgres.Open(database.DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer database.CloseDatabase(db)

	if err := db.Exec("DROP TABLE IF EXISTS users CASCADE;").Error; err != nil {
		return fmt.Errorf("drop users table: %w", err)
	}
	log.Info().Msg("Dropped table: users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool := cache.NewClientPool(cfg.RedisAddr(), cfg.RedisPassword)
	defer pool.Close()

	for _, ns := range []cache.Namespace{cache.Namespace(cfg.TokenBlacklistDB()), cache.Namespace(cfg.RateLimitDB())} {
		if err := pool.Flush(ctx, ns); err != nil {
			return err
		}
		log.Info().Int("db", int(ns)).Msg("Flushed Redis namespace")
	}
	return nil
}
