package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wanderquest-backend/auth-service/handlers"
	"wanderquest-backend/auth-service/middleware"
	"wanderquest-backend/shared/logger"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Health      *handlers.HealthHandler
	Gate        *middleware.AuthGate
	LoginLimit  middleware.AttemptLimiter
	APIPrefix   string
	CORSOrigins []string
}

// NewRouter builds the gin engine with all auth-service routes
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(corsMiddleware(h.CORSOrigins))

	router.GET("/health", h.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(h.APIPrefix)

	login := []gin.HandlerFunc{h.Auth.Login}
	if h.LoginLimit != nil {
		login = append([]gin.HandlerFunc{middleware.LoginRateLimitMiddleware(h.LoginLimit)}, login...)
	}
	api.POST("/login/access-token", login...)
	api.POST("/logout", h.Gate.Middleware(), h.Auth.Logout)

	users := api.Group("/users")
	users.POST("/signup", h.Users.Signup)
	users.GET("/me", h.Gate.Middleware(), h.Users.ReadMe)
	users.PATCH("/me", h.Gate.Middleware(), h.Users.UpdateMe)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AddAllowHeaders("Authorization")
	return cors.New(cfg)
}
