package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("REDIS_TOKEN_BLACKLIST_DB", "")

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, "change-this-secret-key", c.SecretKey)
	assert.Equal(t, 8*24*time.Hour, c.AccessTokenExpire())
	assert.Equal(t, 1, c.TokenBlacklistDB())
	assert.Equal(t, 2, c.RateLimitDB())
	assert.Equal(t, "8001", c.Port())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_TOKEN_BLACKLIST_DB", "7")
	t.Setenv("AUTH_SERVICE_URL", "http://0.0.0.0:9100")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	c := LoadConfig()

	assert.Equal(t, "s3cret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenExpire())
	assert.Equal(t, "cache:6380", c.RedisAddr())
	assert.Equal(t, 7, c.TokenBlacklistDB())
	assert.Equal(t, "9100", c.Port())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowedOrigins())
}

func TestConfig_InvalidNumbersFallBack(t *testing.T) {
	c := &Config{
		AccessTokenExpireMinutes:    "soon",
		LoginRateLimitMaxAttempts:   "many",
		LoginRateLimitWindowSeconds: "",
	}

	assert.Equal(t, 8*24*time.Hour, c.AccessTokenExpire())
	assert.Equal(t, 5, c.LoginRateLimitMax())
	assert.Equal(t, 300*time.Second, c.LoginRateLimitWindow())
}
