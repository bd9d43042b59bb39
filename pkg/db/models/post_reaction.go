package models

import (
	"time"

	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
)

// PostReaction records a single user's reaction to a post. Reacting again
// replaces the previous reaction type.
type PostReaction struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	PostID    uuid.UUID          `gorm:"column:post_id;type:uuid;not null;uniqueIndex:post_reactions_post_user_key"`
	UserID    uuid.UUID          `gorm:"column:user_id;type:uuid;not null;uniqueIndex:post_reactions_post_user_key"`
	Type      enums.ReactionType `gorm:"column:type;type:text;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
