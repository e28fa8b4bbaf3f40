package router

import (
	"inkstream/internal/handlers"
	"inkstream/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	postHandler := handlers.NewPostHandler()
	followHandler := handlers.NewFollowHandler()
	authHandler := handlers.NewAuthHandler()
	groupHandler := handlers.NewGroupHandler()

	// Public routes
	r.GET("/", postHandler.Index)                        // Global feed (cached)
	r.GET("/group/:slug/", postHandler.GroupList)        // Group feed
	r.GET("/profile/:username/", postHandler.Profile)    // Author feed + follow status
	r.GET("/posts/:id/", postHandler.Detail)             // Post detail + comments

	r.GET("/auth/signup/", authHandler.ShowSignup)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.ShowLogin)
	r.POST("/auth/login/", authHandler.Login)
	r.GET("/auth/logout/", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)
		authorized.POST("/create/", postHandler.Create)
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit/", postHandler.Edit)
		authorized.POST("/posts/:id/comment/", postHandler.AddComment)
		authorized.GET("/posts/:id/comment/", postHandler.CommentReturn)

		authorized.POST("/profile/:username/follow/", followHandler.Follow)
		authorized.POST("/profile/:username/unfollow/", followHandler.Unfollow)
		authorized.GET("/follow/", followHandler.FollowIndex)
	}

	// Administrative routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/group/create/", groupHandler.ShowCreate)
		admin.POST("/group/create/", groupHandler.Create)
	}

	// Custom 404 for everything else
	r.NoRoute(handlers.NotFound)
}
