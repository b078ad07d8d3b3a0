package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wanderquest-backend/auth-service/handlers"
	"wanderquest-backend/auth-service/middleware"
	"wanderquest-backend/auth-service/routes"
	"wanderquest-backend/shared/config"
	"wanderquest-backend/shared/database"
	"wanderquest-backend/shared/logger"
	"wanderquest-backend/shared/repository"
	utils "wanderquest-backend/shared/utils/auth"
	"wanderquest-backend/shared/utils/cache"

	_ "wanderquest-backend/docs"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Auth service stopped")
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel, cfg.AppEnv)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.CloseDatabase(db)

	redisPool := cache.NewClientPool(cfg.RedisAddr(), cfg.RedisPassword)
	defer redisPool.Close()

	blacklistNS := cache.Namespace(cfg.TokenBlacklistDB())
	rateLimitNS := cache.Namespace(cfg.RateLimitDB())

	blacklist := cache.NewRedisTokenBlacklist(redisPool.Client(blacklistNS))
	loginLimiter := cache.NewLoginRateLimiter(redisPool.Client(rateLimitNS), cfg.LoginRateLimitMax(), cfg.LoginRateLimitWindow())

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisPool.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	users := repository.NewUserRepository(db)
	tokens := utils.NewTokenIssuer(cfg.SecretKey, cfg.AccessTokenExpire())

	router := routes.NewRouter(routes.Handlers{
		Auth:  handlers.NewAuthHandler(utils.NewCredentialVerifier(users), tokens, blacklist),
		Users: handlers.NewUserHandler(users),
		Health: handlers.NewHealthHandler(
			handlers.HealthCheck{Name: "database", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }},
			handlers.HealthCheck{Name: "redis", Check: redisPool.Ping},
		),
		Gate:        middleware.NewAuthGate(blacklist, tokens, users),
		LoginLimit:  loginLimiter,
		APIPrefix:   cfg.APIV1Str,
		CORSOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port()).Msg("Auth service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down auth service")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
