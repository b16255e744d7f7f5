package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects requests whose Content-Type is not application/json
// with 415 before the handler runs. Attach it to routes that read a body.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"message": "Content-Type must be application/json",
			})
			return
		}
		c.Next()
	}
}
