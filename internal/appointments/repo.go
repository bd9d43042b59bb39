package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes appointment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an appointments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment row.
func (r *Repository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// FindByID loads an appointment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ConflictExists reports whether another appointment already occupies the
// car's slot. The unique index on (car_id, scheduled_at) remains the
// authority under concurrency.
func (r *Repository) ConflictExists(ctx context.Context, carID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error) {
	var appointment models.Appointment
	query := r.db.WithContext(ctx).
		Select("id").
		Where("car_id = ? AND scheduled_at = ?", carID, at)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's appointments, soonest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListAll returns every appointment, soonest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Save persists the full appointment row.
func (r *Repository) Save(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// UpdateStatus overwrites the appointment status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AppointmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
