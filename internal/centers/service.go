package centers

import (
	"context"
	"errors"
	"fmt"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type centerRepository interface {
	Create(ctx context.Context, dto CreateCenterDTO) (*models.ServiceCenter, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceCenter, error)
	List(ctx context.Context, city string) ([]models.ServiceCenter, error)
	Save(ctx context.Context, center *models.ServiceCenter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes the service-center catalog operations. Mutations are
// reserved for administrators and enforced at the routing layer.
type Service interface {
	List(ctx context.Context, city string) ([]CenterDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CenterDTO, error)
	Create(ctx context.Context, input CreateCenterInput) (*CenterDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCenterInput) (*CenterDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCenterInput carries validated controller input for a new center.
type CreateCenterInput struct {
	Name        string
	Address     string
	City        string
	Phone       *string
	Email       *string
	Description *string
}

// UpdateCenterInput describes a partial update; nil fields are left untouched.
type UpdateCenterInput struct {
	Name        *string
	Address     *string
	City        *string
	Phone       *string
	Email       *string
	Description *string
}

type service struct {
	repo centerRepository
}

// NewService builds a centers service with the provided repository.
func NewService(repo centerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("centers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, city string) ([]CenterDTO, error) {
	rows, err := s.repo.List(ctx, city)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list centers")
	}
	out := make([]CenterDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CenterDTO, error) {
	center, err := s.loadCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(center), nil
}

func (s *service) Create(ctx context.Context, input CreateCenterInput) (*CenterDTO, error) {
	center, err := s.repo.Create(ctx, CreateCenterDTO{
		Name:        input.Name,
		Address:     input.Address,
		City:        input.City,
		Phone:       input.Phone,
		Email:       input.Email,
		Description: input.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create center")
	}
	return FromModel(center), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCenterInput) (*CenterDTO, error) {
	center, err := s.loadCenter(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		center.Name = *input.Name
	}
	if input.Address != nil {
		center.Address = *input.Address
	}
	if input.City != nil {
		center.City = *input.City
	}
	if input.Phone != nil {
		center.Phone = input.Phone
	}
	if input.Email != nil {
		center.Email = input.Email
	}
	if input.Description != nil {
		center.Description = input.Description
	}

	if err := s.repo.Save(ctx, center); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update center")
	}
	return FromModel(center), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service center not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete center")
	}
	return nil
}

func (s *service) loadCenter(ctx context.Context, id uuid.UUID) (*models.ServiceCenter, error) {
	center, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service center not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load center")
	}
	return center, nil
}
