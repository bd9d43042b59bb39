package cars

import (
	"context"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes car persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cars repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new car and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateCarDTO) (*models.Car, error) {
	car := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		return nil, err
	}
	return car, nil
}

// FindByID loads a car by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// List returns every registered car ordered by creation date.
func (r *Repository) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// ListByOwner returns the cars owned by the given user.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error) {
	var cars []models.Car
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// Save persists the full car row.
func (r *Repository) Save(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// Delete removes a car row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Car{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
