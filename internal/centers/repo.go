package centers

import (
	"context"
	"errors"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes service-center persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a centers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new service center and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateCenterDTO) (*models.ServiceCenter, error) {
	center := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(center).Error; err != nil {
		return nil, err
	}
	return center, nil
}

// FindByID loads a center by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceCenter, error) {
	var center models.ServiceCenter
	if err := r.db.WithContext(ctx).First(&center, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

// Exists reports whether a center row backs the given id.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var center models.ServiceCenter
	err := r.db.WithContext(ctx).Select("id").First(&center, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns all centers, optionally filtered by city, ordered by name.
func (r *Repository) List(ctx context.Context, city string) ([]models.ServiceCenter, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var centers []models.ServiceCenter
	if err := query.Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

// Save persists the full center row.
func (r *Repository) Save(ctx context.Context, center *models.ServiceCenter) error {
	return r.db.WithContext(ctx).Save(center).Error
}

// Delete removes a center row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceCenter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
