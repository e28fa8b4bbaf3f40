package models

import (
	"time"
)

// Follow 订阅关系 - user 关注 author
// The composite unique index is the storage-level guarantee that at most
// one subscription exists per (user, author) pair, even under concurrent
// creates. Self-follows are kept out by handler logic, not the schema.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
