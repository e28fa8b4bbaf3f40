package handlers

import (
	"log"
	"net/http"
	"strconv"

	"inkstream/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// NotFound renders the custom 404 page; registered as the NoRoute handler
// and used by handlers when a keyed lookup misses.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "errors/404.html", gin.H{
		"Path": c.Request.URL.Path,
	})
}

// ServerError renders the custom 500 page without leaking internals.
func ServerError(c *gin.Context, err error) {
	if err != nil {
		log.Printf("server error on %s: %v", c.Request.URL.Path, err)
	}
	Render(c, http.StatusInternalServerError, "errors/500.html", nil)
}

// Recovery converts panics into the custom 500 page.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic on %s: %v", c.Request.URL.Path, r)
				c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// pageParam reads ?page=N, defaulting to 1 on absent or invalid input.
func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	return page
}
