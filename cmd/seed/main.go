package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"wanderquest-backend/shared/config"
	"wanderquest-backend/shared/database"
	"wanderquest-backend/shared/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Database seeding failed")
	}
	log.Info().Msg("Database seeding completed successfully")
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	log.Info().Msg("Starting database seeding")

	db, err := database.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.CloseDatabase(db)

	if err := database.CreateDemoUser(db, cfg.DemoUserEmail, cfg.DemoUserPassword, "Demo", "Traveller"); err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	return nil
}
