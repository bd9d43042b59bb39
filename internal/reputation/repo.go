package reputation

import (
	"context"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes vote persistence and the leaderboard aggregation.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reputation repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindForPeriod loads the caller's vote for a center in a given month.
func (r *Repository) FindForPeriod(ctx context.Context, userID, centerID uuid.UUID, year, month int) (*models.ServiceVote, error) {
	var vote models.ServiceVote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND center_id = ? AND vote_year = ? AND vote_month = ?",
			userID, centerID, year, month).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Create inserts a fresh vote row.
func (r *Repository) Create(ctx context.Context, vote *models.ServiceVote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

// UpdateRating overwrites the rating on an existing vote.
func (r *Repository) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ServiceVote{}).
		Where("id = ?", id).
		Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MonthlyTop aggregates the leaderboard for one calendar month. Centers
// without votes in the period are omitted.
func (r *Repository) MonthlyTop(ctx context.Context, year, month, limit int) ([]CenterRanking, error) {
	rows := make([]CenterRanking, 0, limit)
	err := r.db.WithContext(ctx).
		Table("service_votes").
		Select(`service_centers.id AS center_id,
			service_centers.name AS center_name,
			service_centers.city AS city,
			service_centers.address AS address,
			AVG(service_votes.rating) AS average_rating,
			COUNT(service_votes.id) AS vote_count`).
		Joins("JOIN service_centers ON service_centers.id = service_votes.center_id").
		Where("service_votes.vote_year = ? AND service_votes.vote_month = ?", year, month).
		Group("service_centers.id, service_centers.name, service_centers.city, service_centers.address").
		Order("average_rating DESC, vote_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
