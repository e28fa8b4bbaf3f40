package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired guards administrative pages. Runs after AuthRequired, so
// a missing user means the chain is misconfigured rather than anonymous.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.HTML(http.StatusForbidden, "errors/403.html", gin.H{
				"Path": c.Request.URL.Path,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
