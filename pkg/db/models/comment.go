package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply attached to a forum post.
type Comment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null;index:comments_post_id_idx"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
