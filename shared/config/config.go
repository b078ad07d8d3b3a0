package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Application
	AppEnv         string
	LogLevel       string
	AuthServiceURL string
	APIV1Str       string
	CORSOrigins    string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	SecretKey                string
	AccessTokenExpireMinutes string

	// Redis
	RedisHost             string
	RedisPort             string
	RedisPassword         string
	RedisTokenBlacklistDB string
	RedisRateLimitDB      string

	// Login Rate Limiting
	LoginRateLimitMaxAttempts   string
	LoginRateLimitWindowSeconds string

	// Demo user (cmd/seed)
	DemoUserEmail    string
	DemoUserPassword string
}

// LoadConfig loads configuration from the first .env file found and the process environment
func LoadConfig() *Config {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info().Str("path", path).Msg("Environment loaded")
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", "http://localhost:8001"),
		APIV1Str:       getEnv("API_V1_STR", "/api/v1"),
		CORSOrigins:    getEnv("CORS_ALLOW_ORIGINS", "*"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "wanderquest"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SecretKey:                getEnv("SECRET_KEY", "change-this-secret-key"),
		AccessTokenExpireMinutes: getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "11520"),

		RedisHost:             getEnv("REDIS_HOST", "localhost"),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisTokenBlacklistDB: getEnv("REDIS_TOKEN_BLACKLIST_DB", "1"),
		RedisRateLimitDB:      getEnv("REDIS_RATE_LIMIT_DB", "2"),

		LoginRateLimitMaxAttempts:   getEnv("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", "5"),
		LoginRateLimitWindowSeconds: getEnv("LOGIN_RATE_LIMIT_WINDOW_SECONDS", "300"),

		DemoUserEmail:    getEnv("DEMO_USER_EMAIL", "user@example.com"),
		DemoUserPassword: getEnv("DEMO_USER_PASSWORD", "changethis"),
	}

	log.Info().Str("env", cfg.AppEnv).Msg("Configuration loaded successfully")
	return cfg
}

// AccessTokenExpire returns the access token lifetime
func (c *Config) AccessTokenExpire() time.Duration {
	return time.Duration(parseInt(c.AccessTokenExpireMinutes, 60*24*8)) * time.Minute
}

// RedisAddr returns host:port of the Redis server
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// TokenBlacklistDB returns the logical Redis database holding revoked tokens
func (c *Config) TokenBlacklistDB() int {
	return parseInt(c.RedisTokenBlacklistDB, 1)
}

// RateLimitDB returns the logical Redis database holding login rate-limit counters
func (c *Config) RateLimitDB() int {
	return parseInt(c.RedisRateLimitDB, 2)
}

func (c *Config) LoginRateLimitMax() int {
	return parseInt(c.LoginRateLimitMaxAttempts, 5)
}

func (c *Config) LoginRateLimitWindow() time.Duration {
	return time.Duration(parseInt(c.LoginRateLimitWindowSeconds, 300)) * time.Second
}

// Port extracts the listen port from AuthServiceURL
func (c *Config) Port() string {
	parts := strings.Split(c.AuthServiceURL, ":")
	if len(parts) < 3 || parts[2] == "" {
		return "8001"
	}
	return strings.TrimSuffix(parts[2], "/")
}

// AllowedOrigins splits CORSOrigins into a list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(value string, defaultValue int) int {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}
