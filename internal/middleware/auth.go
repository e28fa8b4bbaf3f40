package middleware

import (
	"net/http"
	"net/url"

	"inkstream/internal/db"
	"inkstream/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// SessionName is the session cookie name; the response cache keys on its
// value to keep personalized rendering per session.
const SessionName = "inkstream_session"

// LoginPath is where unauthenticated requests are sent, carrying the
// original path in the next parameter.
const LoginPath = "/auth/login/"

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := db.DB.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in, redirecting to the login page
// with a next parameter pointing back at the requested path.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
