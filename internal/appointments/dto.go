package appointments

import (
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
)

// AppointmentDTO is the transport shape for a booking.
type AppointmentDTO struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"user_id"`
	CarID       uuid.UUID               `json:"car_id"`
	CenterID    uuid.UUID               `json:"center_id"`
	ScheduledAt time.Time               `json:"scheduled_at"`
	Description string                  `json:"description"`
	Status      enums.AppointmentStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func FromModel(a *models.Appointment) *AppointmentDTO {
	if a == nil {
		return nil
	}

	return &AppointmentDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		CarID:       a.CarID,
		CenterID:    a.CenterID,
		ScheduledAt: a.ScheduledAt,
		Description: a.Description,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
