package cars

import (
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
)

// CarDTO is the transport shape for a registered vehicle.
type CarDTO struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	Color        *string   `json:"color,omitempty"`
	Mileage      *int      `json:"mileage,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCarDTO holds the data required by the repo to persist a new car.
type CreateCarDTO struct {
	OwnerID      uuid.UUID
	Brand        string
	Model        string
	Year         int
	LicensePlate string
	Color        *string
	Mileage      *int
}

// UpdateCarDTO describes a partial update; nil fields are left untouched.
type UpdateCarDTO struct {
	Brand        *string
	Model        *string
	Year         *int
	LicensePlate *string
	Color        *string
	Mileage      *int
}

func FromModel(c *models.Car) *CarDTO {
	if c == nil {
		return nil
	}

	return &CarDTO{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		Color:        c.Color,
		Mileage:      c.Mileage,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (c CreateCarDTO) ToModel() *models.Car {
	return &models.Car{
		ID:           uuid.New(),
		OwnerID:      c.OwnerID,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		Color:        c.Color,
		Mileage:      c.Mileage,
	}
}
