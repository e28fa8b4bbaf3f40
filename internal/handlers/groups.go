package handlers

import (
	"net/http"
	"strings"

	"inkstream/internal/models"
	"inkstream/internal/repo"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct{}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{}
}

// ShowCreate GET /group/create/ (admin only)
func (h *GroupHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "groups/create.html", gin.H{
		"Title": "New group",
	})
}

// Create POST /group/create/ (admin only)
func (h *GroupHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	slug := strings.TrimSpace(c.PostForm("slug"))
	description := c.PostForm("description")

	form := gin.H{
		"Title":            "New group",
		"GroupTitle":       title,
		"GroupSlug":        slug,
		"GroupDescription": description,
	}

	if title == "" || slug == "" {
		form["Error"] = "Title and slug are required"
		Render(c, http.StatusBadRequest, "groups/create.html", form)
		return
	}

	group := models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := repo.CreateGroup(&group); err != nil {
		form["Error"] = "A group with this slug already exists"
		Render(c, http.StatusConflict, "groups/create.html", form)
		return
	}

	c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}
