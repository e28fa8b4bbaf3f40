package handlers

import (
	"net/http"
	"strings"

	"inkstream/internal/models"
	"inkstream/internal/repo"
	"inkstream/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{
		"Title": "Sign up",
		"Next":  c.Query("next"),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	form := gin.H{"Title": "Sign up", "Username": username, "Email": email, "Next": next}

	if username == "" || email == "" {
		form["Error"] = "Username and email are required"
		Render(c, http.StatusBadRequest, "auth/signup.html", form)
		return
	}
	if len(password) < 6 {
		form["Error"] = "Password must be at least 6 characters"
		Render(c, http.StatusBadRequest, "auth/signup.html", form)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		ServerError(c, err)
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := repo.CreateUser(&user); err != nil {
		form["Error"] = "Username or email already taken"
		Render(c, http.StatusConflict, "auth/signup.html", form)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "Log in",
		"Next":  c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	user, err := repo.FindUserByUsername(username)
	if err != nil || !utils.CheckPassword(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title":    "Log in",
			"Error":    "Invalid username or password",
			"Username": username,
			"Next":     next,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
