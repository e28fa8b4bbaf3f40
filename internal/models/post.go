package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id"` // Nullable, a post may live outside any group
	Group    *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image    string `json:"image"` // Relative media path, empty when no attachment
	// Set once at creation, edits never touch it
	PublishedAt time.Time `gorm:"autoCreateTime;index" json:"published_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

// previewLen is the number of runes shown in list views and log lines.
const previewLen = 15

// Preview returns the display form of a post: the first 15 runes of its text.
func (p Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) <= previewLen {
		return p.Text
	}
	return string(runes[:previewLen])
}

func (p Post) String() string {
	return p.Preview()
}
