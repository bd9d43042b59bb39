package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCenter is a workshop that accepts appointments and monthly votes.
type ServiceCenter struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Address     string    `gorm:"column:address;not null"`
	City        string    `gorm:"column:city;not null;index:service_centers_city_idx"`
	Phone       *string   `gorm:"column:phone"`
	Email       *string   `gorm:"column:email"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
