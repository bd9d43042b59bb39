package models

import (
	"time"

	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
)

// Post is a forum entry authored by a user.
type Post struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	AuthorID  uuid.UUID           `gorm:"column:author_id;type:uuid;not null;index:posts_author_id_idx"`
	Title     string              `gorm:"column:title;not null"`
	Content   string              `gorm:"column:content;not null"`
	Category  enums.ForumCategory `gorm:"column:category;type:text;not null;default:GENERAL"`
	Rating    int                 `gorm:"column:rating;not null;default:1"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
