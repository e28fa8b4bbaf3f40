package repo

import (
	"inkstream/internal/db"
	"inkstream/internal/models"
)

func FindGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func FindGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := db.DB.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func AllGroups() ([]models.Group, error) {
	var groups []models.Group
	err := db.DB.Order("id ASC").Find(&groups).Error
	return groups, err
}

func CreateGroup(group *models.Group) error {
	return db.DB.Create(group).Error
}
