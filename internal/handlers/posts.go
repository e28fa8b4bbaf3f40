package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"inkstream/internal/middleware"
	"inkstream/internal/models"
	"inkstream/internal/repo"
	"inkstream/internal/services"
	"inkstream/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IndexCacheTTL is how long a rendered global feed page stays cached.
// Entries expire, they are never invalidated, so a page may transiently
// show deleted or missing posts.
const IndexCacheTTL = 20 * time.Second

type PostHandler struct {
	imageStore *services.ImageStore
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		imageStore: services.NewImageStore(),
	}
}

// indexCacheKey varies on the session cookie so personalized rendering is
// never shared between sessions.
func indexCacheKey(c *gin.Context, page int) string {
	sid, _ := c.Cookie(middleware.SessionName)
	return fmt.Sprintf("feed:index:page:%d:sid:%s", page, sid)
}

// Index GET / - 全局feed，带20秒缓存
func (h *PostHandler) Index(c *gin.Context) {
	page := pageParam(c)

	cacheKey := indexCacheKey(c, page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			// Render mutates its map, so hand it a copy and leave the
			// cached entry untouched for concurrent readers.
			data := gin.H{}
			for k, v := range hData {
				data[k] = v
			}
			Render(c, http.StatusOK, "posts/index.html", data)
			return
		}
	}

	feed, err := repo.GlobalFeed(page)
	if err != nil {
		ServerError(c, err)
		return
	}

	renderData := gin.H{
		"Title": "Latest posts",
		"Feed":  feed,
	}

	utils.GetCache().Set(cacheKey, renderData, IndexCacheTTL)

	data := gin.H{}
	for k, v := range renderData {
		data[k] = v
	}
	Render(c, http.StatusOK, "posts/index.html", data)
}

// GroupList GET /group/:slug/
func (h *PostHandler) GroupList(c *gin.Context) {
	group, feed, err := repo.GroupFeed(c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title": group.Title,
		"Group": group,
		"Feed":  feed,
	})
}

// Profile GET /profile/:username/ - author feed plus follow state
func (h *PostHandler) Profile(c *gin.Context) {
	author, feed, err := repo.AuthorFeed(c.Param("username"), pageParam(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	following := false
	if viewer := middleware.CurrentUser(c); viewer != nil && viewer.ID != author.ID {
		following, _ = repo.IsFollowing(viewer.ID, author.ID)
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"Feed":      feed,
		"Following": following,
	})
}

type renderedComment struct {
	models.Comment
	TextHTML template.HTML
}

// detailData assembles the render context for the post detail view; the
// comment form redisplay on validation errors reuses it.
func detailData(post *models.Post) (gin.H, error) {
	comments, err := repo.CommentsForPost(post.ID)
	if err != nil {
		return nil, err
	}

	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
		}
	}

	return gin.H{
		"Title":    post.Preview(),
		"Post":     post,
		"PostHTML": utils.RenderMarkdown(post.Text),
		"Comments": rendered,
	}, nil
}

// Detail GET /posts/:id/
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := repo.FindPostByID(utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	data, err := detailData(post)
	if err != nil {
		ServerError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/detail.html", data)
}

// AddComment POST /posts/:id/comment/ (auth required)
func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, err := repo.FindPostByID(utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	text := c.PostForm("text")
	if text == "" {
		// Redisplay the detail page with the inline error, persist nothing
		data, derr := detailData(post)
		if derr != nil {
			ServerError(c, derr)
			return
		}
		data["CommentError"] = "Comment text must not be empty"
		Render(c, http.StatusBadRequest, "posts/detail.html", data)
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := repo.CreateComment(&comment); err != nil {
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// CommentReturn GET /posts/:id/comment/ (auth required)
// A guest submitting the comment form gets bounced to login with this path
// as the return target; the browser comes back with a GET, so send the
// now-authenticated user to the post itself.
func (h *PostHandler) CommentReturn(c *gin.Context) {
	c.Redirect(http.StatusFound, "/posts/"+c.Param("id")+"/")
}

// postForm carries the create/edit form state back to the template on
// validation errors so the user's input survives the round trip.
type postForm struct {
	Text    string
	GroupID string
	Error   string
}

// resolveGroupID validates the optional group selection. An empty value
// means no group; anything else must reference an existing group.
func resolveGroupID(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	group, err := repo.FindGroupByID(utils.StringToUint(raw))
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}

func (h *PostHandler) renderPostForm(c *gin.Context, code int, form postForm, post *models.Post) {
	groups, err := repo.AllGroups()
	if err != nil {
		ServerError(c, err)
		return
	}
	data := gin.H{
		"Title":  "New post",
		"Form":   form,
		"Groups": groups,
	}
	if post != nil {
		data["Title"] = "Edit post"
		data["IsEdit"] = true
		data["Post"] = post
	}
	Render(c, code, "posts/create.html", data)
}

// ShowCreate GET /create/ (auth required)
func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, postForm{}, nil)
}

// Create POST /create/ (auth required)
// The caller becomes the author; any author field in the input is ignored.
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	form := postForm{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group_id"),
	}

	if form.Text == "" {
		form.Error = "Post text must not be empty"
		h.renderPostForm(c, http.StatusBadRequest, form, nil)
		return
	}

	groupID, err := resolveGroupID(form.GroupID)
	if err != nil {
		form.Error = "Selected group does not exist"
		h.renderPostForm(c, http.StatusBadRequest, form, nil)
		return
	}

	image := ""
	if header, err := c.FormFile("image"); err == nil && header != nil {
		image, err = h.imageStore.Save(header)
		if err != nil {
			form.Error = "Could not store the attached image"
			h.renderPostForm(c, http.StatusBadRequest, form, nil)
			return
		}
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := repo.CreatePost(&post); err != nil {
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// ShowEdit GET /posts/:id/edit/ (auth required, author only)
func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, err := repo.FindPostByID(utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	// Non-authors land on the post itself, not an error page
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	form := postForm{Text: post.Text}
	if post.GroupID != nil {
		form.GroupID = fmt.Sprint(*post.GroupID)
	}
	h.renderPostForm(c, http.StatusOK, form, post)
}

// Edit POST /posts/:id/edit/ (auth required, author only)
// Author and published_at are immutable; only text, group and image change.
func (h *PostHandler) Edit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	post, err := repo.FindPostByID(utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		ServerError(c, err)
		return
	}

	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	form := postForm{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group_id"),
	}

	if form.Text == "" {
		form.Error = "Post text must not be empty"
		h.renderPostForm(c, http.StatusBadRequest, form, post)
		return
	}

	groupID, err := resolveGroupID(form.GroupID)
	if err != nil {
		form.Error = "Selected group does not exist"
		h.renderPostForm(c, http.StatusBadRequest, form, post)
		return
	}

	image := ""
	if header, err := c.FormFile("image"); err == nil && header != nil {
		image, err = h.imageStore.Save(header)
		if err != nil {
			form.Error = "Could not store the attached image"
			h.renderPostForm(c, http.StatusBadRequest, form, post)
			return
		}
	}
	clearImage := image == "" && c.PostForm("remove_image") != ""

	if err := repo.UpdatePost(post, form.Text, groupID, image, clearImage); err != nil {
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
