package repo

import (
	"errors"

	"inkstream/internal/db"
	"inkstream/internal/models"

	"gorm.io/gorm"
)

// FollowAuthor creates a subscription if absent. The idx_user_author
// unique index makes this race-safe: when two concurrent calls collide,
// the loser's duplicate-key error is absorbed and reported as success,
// so the caller always observes "following" afterwards.
func FollowAuthor(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := db.DB.Create(&follow).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// UnfollowAuthor removes a subscription. Removing one that does not exist
// is a no-op.
func UnfollowAuthor(userID, authorID uint) error {
	return db.DB.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

func IsFollowing(userID, authorID uint) (bool, error) {
	var follow models.Follow
	err := db.DB.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func CountFollows(userID, authorID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count, err
}
