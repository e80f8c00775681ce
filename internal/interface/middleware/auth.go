package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/pkg/helpers"
	"blog-backend/pkg/response"
)

// Auth validates the session cookie and sets userID in the Gin context.
// Sessions are stateless JWTs; there is no server-side session store.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			response.Fail(c, http.StatusUnauthorized, "please login to continue", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "session is invalid or has expired", nil)
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Next()
	}
}
