package reactions

import (
	"context"
	"errors"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes reaction persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reactions repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find loads the user's reaction on a post.
func (r *Repository) Find(ctx context.Context, postID, userID uuid.UUID) (*models.PostReaction, error) {
	var reaction models.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Create inserts a fresh reaction row.
func (r *Repository) Create(ctx context.Context, reaction *models.PostReaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

// UpdateType overwrites the reaction type on an existing row and stamps
// updated_at even when the type is unchanged.
func (r *Repository) UpdateType(ctx context.Context, id uuid.UUID, reactionType enums.ReactionType) error {
	result := r.db.WithContext(ctx).
		Model(&models.PostReaction{}).
		Where("id = ?", id).
		Update("type", reactionType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user's reaction. Removing an absent reaction is not
// an error.
func (r *Repository) Delete(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.PostReaction{}, "post_id = ? AND user_id = ?", postID, userID).Error
}

// CountByType tallies the post's reactions grouped by type.
func (r *Repository) CountByType(ctx context.Context, postID uuid.UUID) (map[enums.ReactionType]int64, error) {
	type row struct {
		Type  enums.ReactionType
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.PostReaction{}).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.ReactionType]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}

// UserReaction returns the caller's reaction type, or nil when absent.
func (r *Repository) UserReaction(ctx context.Context, postID, userID uuid.UUID) (*enums.ReactionType, error) {
	reaction, err := r.Find(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction.Type, nil
}
