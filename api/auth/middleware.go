package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/shrinx/shrinx/api/models"
)

// RequireAuth gates admin routes on an authenticated session. The session
// identity is loaded once into a models.User on the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		loggedIn, _ := session.Get(sessionKeyLoggedIn).(bool)
		username, _ := session.Get(sessionKeyUsername).(string)
		if !loggedIn || username == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user", &models.User{Username: username})
	}
}
