package models

import (
	"time"

	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
)

// Appointment books a car into a service center at a point in time.
// The (car_id, scheduled_at) pair is unique; the database constraint is
// authoritative under concurrent booking.
type Appointment struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index:appointments_user_id_idx"`
	CarID       uuid.UUID               `gorm:"column:car_id;type:uuid;not null;uniqueIndex:appointments_car_scheduled_key"`
	CenterID    uuid.UUID               `gorm:"column:center_id;type:uuid;not null;index:appointments_center_id_idx"`
	ScheduledAt time.Time               `gorm:"column:scheduled_at;not null;uniqueIndex:appointments_car_scheduled_key"`
	Description string                  `gorm:"column:description;not null;default:''"`
	Status      enums.AppointmentStatus `gorm:"column:status;type:text;not null;default:PENDING"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
