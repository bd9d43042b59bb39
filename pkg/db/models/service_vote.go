package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceVote is one user's rating of a service center for a calendar month.
// A second vote in the same period updates the existing row.
type ServiceVote struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:service_votes_user_center_period_key"`
	CenterID  uuid.UUID `gorm:"column:center_id;type:uuid;not null;uniqueIndex:service_votes_user_center_period_key;index:service_votes_center_id_idx"`
	VoteYear  int       `gorm:"column:vote_year;not null;uniqueIndex:service_votes_user_center_period_key"`
	VoteMonth int       `gorm:"column:vote_month;not null;uniqueIndex:service_votes_user_center_period_key"`
	Rating    int       `gorm:"column:rating;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
