package repo

import (
	"inkstream/internal/db"
	"inkstream/internal/models"
)

func CreateComment(comment *models.Comment) error {
	return db.DB.Create(comment).Error
}

// CommentsForPost returns a post's comments newest first.
func CommentsForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
