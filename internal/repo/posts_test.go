package repo

import (
	"testing"
	"time"

	"inkstream/internal/db"
	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePostKeepsAuthorAndPublishedAt(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	group := createTestGroup(t, "tech")

	post := createTestPosts(t, author, nil, 1)[0]
	published := post.PublishedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, UpdatePost(&post, "edited text", &group.ID, "", false))

	fresh, err := FindPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited text", fresh.Text)
	require.NotNil(t, fresh.GroupID)
	assert.Equal(t, group.ID, *fresh.GroupID)
	assert.Equal(t, author.ID, fresh.AuthorID)
	assert.WithinDuration(t, published, fresh.PublishedAt, time.Millisecond)

	// Edits never add rows
	total, err := CountPosts()
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdatePostKeepsImageWhenNoneUploaded(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")

	post := models.Post{Text: "with image", AuthorID: author.ID, Image: "posts/a.png"}
	require.NoError(t, CreatePost(&post))

	require.NoError(t, UpdatePost(&post, "new text", nil, "", false))

	fresh, err := FindPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "posts/a.png", fresh.Image)
}

func TestUpdatePostClearsImageOnRequest(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")

	post := models.Post{Text: "with image", AuthorID: author.ID, Image: "posts/a.png"}
	require.NoError(t, CreatePost(&post))

	require.NoError(t, UpdatePost(&post, "without image", nil, "", true))

	fresh, err := FindPostByID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Image)
}

func TestDeleteGroupClearsPostReference(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	group := createTestGroup(t, "tech")
	post := createTestPosts(t, author, &group.ID, 1)[0]

	require.NoError(t, db.DB.Delete(&models.Group{}, group.ID).Error)

	// The post survives with its group reference cleared
	fresh, err := FindPostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.GroupID)
}

func TestDeletePostCascadesComments(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	post := createTestPosts(t, author, nil, 1)[0]

	comment := models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "bye"}
	require.NoError(t, CreateComment(&comment))

	require.NoError(t, db.DB.Delete(&models.Post{}, post.ID).Error)

	var count int64
	require.NoError(t, db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCommentsForPostNewestFirst(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "alice")
	post := createTestPosts(t, author, nil, 1)[0]

	for _, text := range []string{"first", "second", "third"} {
		comment := models.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
		require.NoError(t, CreateComment(&comment))
	}

	comments, err := CommentsForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Text)
	assert.Equal(t, "first", comments[2].Text)
}
