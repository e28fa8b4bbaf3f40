package repo

import (
	"inkstream/internal/db"
	"inkstream/internal/models"
)

func FindPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := db.DB.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func CreatePost(post *models.Post) error {
	return db.DB.Create(post).Error
}

// UpdatePost persists an edit. Only text, group and image are written:
// author and published_at are fixed at creation. An empty image leaves the
// stored attachment alone unless clearImage is set.
func UpdatePost(post *models.Post, text string, groupID *uint, image string, clearImage bool) error {
	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if image != "" {
		updates["image"] = image
	} else if clearImage {
		updates["image"] = ""
	}
	return db.DB.Model(post).Updates(updates).Error
}

func CountPosts() (int64, error) {
	var total int64
	err := db.DB.Model(&models.Post{}).Count(&total).Error
	return total, err
}
