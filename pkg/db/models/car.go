package models

import (
	"time"

	"github.com/google/uuid"
)

// Car is a vehicle registered by a user.
type Car struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID      uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index:cars_owner_id_idx"`
	Brand        string    `gorm:"column:brand;not null"`
	Model        string    `gorm:"column:model;not null"`
	Year         int       `gorm:"column:year;not null"`
	LicensePlate string    `gorm:"column:license_plate;not null;uniqueIndex:cars_license_plate_key"`
	Color        *string   `gorm:"column:color"`
	Mileage      *int      `gorm:"column:mileage"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
