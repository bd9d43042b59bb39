package cars

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const firstModelYear = 1886

type carRepository interface {
	Create(ctx context.Context, dto CreateCarDTO) (*models.Car, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Car, error)
	Save(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes the vehicle registry operations.
type Service interface {
	ListAll(ctx context.Context) ([]CarDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]CarDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CarDTO, error)
	Create(ctx context.Context, ownerID uuid.UUID, input CreateCarInput) (*CarDTO, error)
	Update(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, carID uuid.UUID, input UpdateCarInput) (*CarDTO, error)
	Delete(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, carID uuid.UUID) error
}

// CreateCarInput carries validated controller input for a new car.
type CreateCarInput struct {
	Brand        string
	Model        string
	Year         int
	LicensePlate string
	Color        *string
	Mileage      *int
}

// UpdateCarInput carries the fields a partial car update may touch.
type UpdateCarInput struct {
	Brand        *string
	Model        *string
	Year         *int
	LicensePlate *string
	Color        *string
	Mileage      *int
}

type service struct {
	repo carRepository
}

// NewService builds a cars service with the provided repository.
func NewService(repo carRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cars repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListAll(ctx context.Context) ([]CarDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cars")
	}
	return toDTOs(rows), nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]CarDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned cars")
	}
	return toDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CarDTO, error) {
	car, err := s.loadCar(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(car), nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateCarInput) (*CarDTO, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	car, err := s.repo.Create(ctx, CreateCarDTO{
		OwnerID:      ownerID,
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Color:        input.Color,
		Mileage:      input.Mileage,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "cars_license_plate_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "license plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create car")
	}
	return FromModel(car), nil
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, carID uuid.UUID, input UpdateCarInput) (*CarDTO, error) {
	car, err := s.loadCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(car, actorID, actorRole); err != nil {
		return nil, err
	}

	if input.Brand != nil {
		car.Brand = *input.Brand
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		car.Year = *input.Year
	}
	if input.LicensePlate != nil {
		car.LicensePlate = *input.LicensePlate
	}
	if input.Color != nil {
		car.Color = input.Color
	}
	if input.Mileage != nil {
		car.Mileage = input.Mileage
	}

	if err := s.repo.Save(ctx, car); err != nil {
		if db.IsUniqueViolation(err, "cars_license_plate_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "license plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update car")
	}
	return FromModel(car), nil
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, carID uuid.UUID) error {
	car, err := s.loadCar(ctx, carID)
	if err != nil {
		return err
	}
	if err := requireOwnership(car, actorID, actorRole); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, carID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete car")
	}
	return nil
}

func (s *service) loadCar(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
	}
	return car, nil
}

func requireOwnership(car *models.Car, actorID uuid.UUID, actorRole enums.Role) error {
	if car.OwnerID != actorID && actorRole != enums.RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not the owner of this car")
	}
	return nil
}

func validateYear(year int) error {
	if year < firstModelYear || year > time.Now().Year()+1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "model year out of range")
	}
	return nil
}

func toDTOs(rows []models.Car) []CarDTO {
	out := make([]CarDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
