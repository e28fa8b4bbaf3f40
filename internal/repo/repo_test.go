package repo

import (
	"fmt"
	"testing"

	"inkstream/internal/db"
	"inkstream/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps db.DB for an in-memory SQLite database so the real
// unique indexes and foreign keys are exercised.
func setupTestDB(t *testing.T) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	db.DB = conn
	t.Cleanup(func() { sqlDB.Close() })
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, CreateUser(&user))
	return &user
}

func createTestGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: slug, Slug: slug}
	require.NoError(t, CreateGroup(&group))
	return &group
}

func createTestPosts(t *testing.T, author *models.User, groupID *uint, n int) []models.Post {
	t.Helper()
	posts := make([]models.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = models.Post{
			Text:     fmt.Sprintf("post number %d by %s", i+1, author.Username),
			AuthorID: author.ID,
			GroupID:  groupID,
		}
		require.NoError(t, CreatePost(&posts[i]))
	}
	return posts
}
