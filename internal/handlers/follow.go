package handlers

import (
	"errors"
	"net/http"

	"inkstream/internal/middleware"
	"inkstream/internal/models"
	"inkstream/internal/repo"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// Follow POST /profile/:username/follow/ (auth required)
// Self-follow and already-following are silent no-ops; either way the
// caller lands back on the target's profile.
func (h *FollowHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, err := repo.FindUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	if user.ID != author.ID {
		if err := repo.FollowAuthor(user.ID, author.ID); err != nil {
			ServerError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Unfollow POST /profile/:username/unfollow/ (auth required)
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, err := repo.FindUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	if err := repo.UnfollowAuthor(user.ID, author.ID); err != nil {
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// FollowIndex GET /follow/ (auth required) - posts from followed authors
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	feed, err := repo.SubscriptionFeed(user.ID, pageParam(c))
	if err != nil {
		ServerError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Subscriptions",
		"Feed":  feed,
	})
}
