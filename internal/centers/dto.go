package centers

import (
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
)

// CenterDTO is the transport shape for a service center.
type CenterDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCenterDTO holds the data required by the repo to persist a center.
type CreateCenterDTO struct {
	Name        string
	Address     string
	City        string
	Phone       *string
	Email       *string
	Description *string
}

func FromModel(c *models.ServiceCenter) *CenterDTO {
	if c == nil {
		return nil
	}

	return &CenterDTO{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c CreateCenterDTO) ToModel() *models.ServiceCenter {
	return &models.ServiceCenter{
		ID:          uuid.New(),
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
	}
}
