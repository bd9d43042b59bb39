package reactions

import (
	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/enums"
)

// Summary is the per-post reaction tally plus the caller's own reaction.
type Summary struct {
	PostID       uuid.UUID                    `json:"post_id"`
	Counts       map[enums.ReactionType]int64 `json:"counts"`
	Total        int64                        `json:"total"`
	UserReaction *enums.ReactionType          `json:"user_reaction,omitempty"`
}
