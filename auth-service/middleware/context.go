package middleware

import (
	"github.com/gin-gonic/gin"

	"wanderquest-backend/shared/database/models"
)

const (
	currentUserKey = "currentUser"
	accessTokenKey = "accessToken"
)

func setSession(c *gin.Context, user *models.User, token string) {
	c.Set(currentUserKey, user)
	c.Set(accessTokenKey, token)
}

// CurrentUser returns the user resolved by AuthGate for this request
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// AccessToken returns the raw bearer token accepted by AuthGate
func AccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
