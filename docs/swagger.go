// Package docs WanderQuest API documentation
package docs

// @title WanderQuest API
// @version 1.0
// @description Authentication and user profile API of the WanderQuest tourism backend

// @host localhost:8001
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

// @tag.name login
// @tag.description Access tokens and logout
// @tag.name users
// @tag.description Registration and own profile
// @tag.name health
// @tag.description Liveness of the service and its stores
