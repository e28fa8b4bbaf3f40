package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkstream/internal/db"
	"inkstream/internal/middleware"
	"inkstream/internal/models"
	"inkstream/internal/repo"
	"inkstream/internal/router"
	"inkstream/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	db.DB = conn
	t.Cleanup(func() { sqlDB.Close() })
}

// testRenderer registers bare-bones templates under the production view
// names so assertions can target markers instead of real markup.
func testRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromString("posts/index.html",
		`{{ range .Feed.Items }}<item>{{ .Text }}</item>{{ end }}<pages>{{ .Feed.TotalPages }}</pages>`)
	r.AddFromString("posts/group_list.html",
		`<h1>{{ .Group.Title }}</h1>{{ range .Feed.Items }}<item>{{ .Text }}</item>{{ end }}`)
	r.AddFromString("posts/profile.html",
		`<h1>{{ .Author.Username }}</h1><following>{{ .Following }}</following>{{ range .Feed.Items }}<item>{{ .Text }}</item>{{ end }}`)
	r.AddFromString("posts/detail.html",
		`<post>{{ .Post.Text }}</post>{{ with .CommentError }}<error>{{ . }}</error>{{ end }}{{ range .Comments }}<comment>{{ .Text }}</comment>{{ end }}`)
	r.AddFromString("posts/create.html",
		`{{ with .Form.Error }}<error>{{ . }}</error>{{ end }}<textarea>{{ .Form.Text }}</textarea>`)
	r.AddFromString("posts/follow.html",
		`{{ range .Feed.Items }}<item>{{ .Text }}</item>{{ end }}<pages>{{ .Feed.TotalPages }}</pages>`)
	r.AddFromString("auth/login.html",
		`<login next="{{ .Next }}">{{ with .Error }}<error>{{ . }}</error>{{ end }}`)
	r.AddFromString("auth/signup.html",
		`<signup>{{ with .Error }}<error>{{ . }}</error>{{ end }}`)
	r.AddFromString("groups/create.html",
		`<groupform>{{ with .Error }}<error>{{ . }}</error>{{ end }}`)
	r.AddFromString("errors/404.html", `<notfound>{{ .Path }}</notfound>`)
	r.AddFromString("errors/403.html", `<forbidden>`)
	r.AddFromString("errors/500.html", `<servererror>`)
	return r
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)
	utils.GetCache().Purge()

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(middleware.SessionName, store))
	r.HTMLRender = testRenderer()
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

func perform(r *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signup registers a user through the real handler and returns the session
// cookies of the now logged-in account.
func signup(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := perform(r, "POST", "/auth/signup/", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := repo.FindUserByUsername(username)
	require.NoError(t, err)
	return user
}

func seedPost(t *testing.T, authorID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: authorID}
	require.NoError(t, repo.CreatePost(post))
	return post
}
