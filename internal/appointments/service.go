package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db"
	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const slotTakenMessage = "car already has an appointment at this time"

type appointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ConflictExists(ctx context.Context, carID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	Save(ctx context.Context, appointment *models.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AppointmentStatus) error
}

type carReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
}

type centerChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes the booking lifecycle.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*AppointmentDTO, error)
	Get(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, id uuid.UUID) (*AppointmentDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]AppointmentDTO, error)
	ListAll(ctx context.Context) ([]AppointmentDTO, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input UpdateInput) (*AppointmentDTO, error)
	Cancel(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*AppointmentDTO, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.AppointmentStatus) (*AppointmentDTO, error)
}

// CreateInput carries validated controller input for a new booking.
type CreateInput struct {
	CarID       uuid.UUID
	CenterID    uuid.UUID
	ScheduledAt time.Time
	Description string
}

// UpdateInput describes a partial reschedule of a pending booking.
type UpdateInput struct {
	ScheduledAt *time.Time
	Description *string
	CenterID    *uuid.UUID
}

// ServiceParams bundles the dependencies for the appointments service.
type ServiceParams struct {
	Repo    appointmentRepository
	Cars    carReader
	Centers centerChecker
	Now     func() time.Time
}

type service struct {
	repo    appointmentRepository
	cars    carReader
	centers centerChecker
	now     func() time.Time
}

// NewService builds an appointments service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("appointments repository required")
	}
	if params.Cars == nil {
		return nil, fmt.Errorf("car reader required")
	}
	if params.Centers == nil {
		return nil, fmt.Errorf("center checker required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		cars:    params.Cars,
		centers: params.Centers,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*AppointmentDTO, error) {
	if !input.ScheduledAt.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment must be scheduled in the future")
	}

	car, err := s.cars.FindByID(ctx, input.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "car not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load car")
	}
	if car.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the owner of this car")
	}

	exists, err := s.centers.Exists(ctx, input.CenterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check center")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service center not found")
	}

	scheduledAt := input.ScheduledAt.UTC()
	taken, err := s.repo.ConflictExists(ctx, input.CarID, scheduledAt, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slot")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, slotTakenMessage)
	}

	appointment := &models.Appointment{
		ID:          uuid.New(),
		UserID:      userID,
		CarID:       input.CarID,
		CenterID:    input.CenterID,
		ScheduledAt: scheduledAt,
		Description: strings.TrimSpace(input.Description),
		Status:      enums.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		if db.IsUniqueViolation(err, "appointments_car_scheduled_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, slotTakenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create appointment")
	}

	return FromModel(appointment), nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, actorRole enums.Role, id uuid.UUID) (*AppointmentDTO, error) {
	appointment, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.UserID != actorID && actorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your appointment")
	}
	return FromModel(appointment), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]AppointmentDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list appointments")
	}
	return toDTOs(rows), nil
}

func (s *service) ListAll(ctx context.Context) ([]AppointmentDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list appointments")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input UpdateInput) (*AppointmentDTO, error) {
	appointment, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your appointment")
	}
	if appointment.Status != enums.AppointmentStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only pending appointments can be rescheduled")
	}

	if input.ScheduledAt != nil && !input.ScheduledAt.UTC().Equal(appointment.ScheduledAt) {
		newTime := input.ScheduledAt.UTC()
		if !newTime.After(s.now()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "appointment must be scheduled in the future")
		}
		taken, err := s.repo.ConflictExists(ctx, appointment.CarID, newTime, appointment.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slot")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, slotTakenMessage)
		}
		appointment.ScheduledAt = newTime
	}

	if input.CenterID != nil && *input.CenterID != appointment.CenterID {
		exists, err := s.centers.Exists(ctx, *input.CenterID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check center")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service center not found")
		}
		appointment.CenterID = *input.CenterID
	}

	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			appointment.Description = trimmed
		}
	}

	if err := s.repo.Save(ctx, appointment); err != nil {
		if db.IsUniqueViolation(err, "appointments_car_scheduled_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, slotTakenMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update appointment")
	}
	return FromModel(appointment), nil
}

func (s *service) Cancel(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*AppointmentDTO, error) {
	appointment, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not your appointment")
	}
	if appointment.Status == enums.AppointmentStatusCancelled {
		return FromModel(appointment), nil
	}

	if err := s.repo.UpdateStatus(ctx, id, enums.AppointmentStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel appointment")
	}
	appointment.Status = enums.AppointmentStatusCancelled
	return FromModel(appointment), nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.AppointmentStatus) (*AppointmentDTO, error) {
	if status != enums.AppointmentStatusConfirmed && status != enums.AppointmentStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be CONFIRMED or CANCELLED")
	}

	appointment, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set appointment status")
	}
	appointment.Status = status
	return FromModel(appointment), nil
}

func (s *service) loadAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load appointment")
	}
	return appointment, nil
}

func toDTOs(rows []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
