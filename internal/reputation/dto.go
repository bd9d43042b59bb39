package reputation

import (
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
)

// VoteDTO is the transport shape for a single monthly rating.
type VoteDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CenterID  uuid.UUID `json:"center_id"`
	VoteYear  int       `json:"vote_year"`
	VoteMonth int       `json:"vote_month"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteResult pairs the stored vote with whether it was created or updated.
type VoteResult struct {
	Vote    *VoteDTO `json:"vote"`
	Outcome string   `json:"outcome"`
}

// CenterRanking is one row of the monthly leaderboard.
type CenterRanking struct {
	CenterID      uuid.UUID `json:"center_id"`
	CenterName    string    `json:"center_name"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"average_rating"`
	VoteCount     int64     `json:"vote_count"`
}

func voteFromModel(v *models.ServiceVote) *VoteDTO {
	if v == nil {
		return nil
	}

	return &VoteDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		CenterID:  v.CenterID,
		VoteYear:  v.VoteYear,
		VoteMonth: v.VoteMonth,
		Rating:    v.Rating,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
