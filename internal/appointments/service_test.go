package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestCreateAppointmentSuccess(t *testing.T) {
	ownerID := uuid.New()
	car := &models.Car{ID: uuid.New(), OwnerID: ownerID}
	repo := &stubAppointmentRepo{}
	svc := mustService(t, repo, &stubCarReader{car: car}, &stubCenterChecker{exists: true})

	dto, err := svc.Create(context.Background(), ownerID, CreateInput{
		CarID:       car.ID,
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(48 * time.Hour),
		Description: "  oil change  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.AppointmentStatusPending {
		t.Fatalf("expected PENDING status, got %s", dto.Status)
	}
	if dto.Description != "oil change" {
		t.Fatalf("expected trimmed description, got %q", dto.Description)
	}
	if dto.UserID != ownerID {
		t.Fatalf("expected booking owner %s, got %s", ownerID, dto.UserID)
	}
}

func TestCreateAppointmentRejectsPast(t *testing.T) {
	svc := mustService(t, &stubAppointmentRepo{}, &stubCarReader{}, &stubCenterChecker{exists: true})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		CarID:       uuid.New(),
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(-time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateAppointmentUnknownCar(t *testing.T) {
	svc := mustService(t, &stubAppointmentRepo{}, &stubCarReader{err: gorm.ErrRecordNotFound}, &stubCenterChecker{exists: true})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		CarID:       uuid.New(),
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateAppointmentNotCarOwner(t *testing.T) {
	car := &models.Car{ID: uuid.New(), OwnerID: uuid.New()}
	svc := mustService(t, &stubAppointmentRepo{}, &stubCarReader{car: car}, &stubCenterChecker{exists: true})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		CarID:       car.ID,
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateAppointmentUnknownCenter(t *testing.T) {
	ownerID := uuid.New()
	car := &models.Car{ID: uuid.New(), OwnerID: ownerID}
	svc := mustService(t, &stubAppointmentRepo{}, &stubCarReader{car: car}, &stubCenterChecker{exists: false})

	_, err := svc.Create(context.Background(), ownerID, CreateInput{
		CarID:       car.ID,
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	ownerID := uuid.New()
	car := &models.Car{ID: uuid.New(), OwnerID: ownerID}
	repo := &stubAppointmentRepo{conflict: true}
	svc := mustService(t, repo, &stubCarReader{car: car}, &stubCenterChecker{exists: true})

	_, err := svc.Create(context.Background(), ownerID, CreateInput{
		CarID:       car.ID,
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateAppointmentInsertRace(t *testing.T) {
	ownerID := uuid.New()
	car := &models.Car{ID: uuid.New(), OwnerID: ownerID}
	repo := &stubAppointmentRepo{createErr: uniqueSlotErr{}}
	svc := mustService(t, repo, &stubCarReader{car: car}, &stubCenterChecker{exists: true})

	_, err := svc.Create(context.Background(), ownerID, CreateInput{
		CarID:       car.ID,
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(time.Hour),
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateAppointmentPendingOnly(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusConfirmed)
	svc := mustService(t, &stubAppointmentRepo{appointment: appointment}, &stubCarReader{}, &stubCenterChecker{exists: true})

	newTime := fixedNow.Add(72 * time.Hour)
	_, err := svc.Update(context.Background(), ownerID, appointment.ID, UpdateInput{ScheduledAt: &newTime})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateAppointmentSkipsBlankDescription(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusPending)
	appointment.Description = "brake inspection"
	repo := &stubAppointmentRepo{appointment: appointment}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	blank := "   "
	dto, err := svc.Update(context.Background(), ownerID, appointment.ID, UpdateInput{Description: &blank})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Description != "brake inspection" {
		t.Fatalf("blank description should not overwrite, got %q", dto.Description)
	}
}

func TestUpdateAppointmentRescheduleConflict(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusPending)
	repo := &stubAppointmentRepo{appointment: appointment, conflict: true}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	newTime := fixedNow.Add(96 * time.Hour)
	_, err := svc.Update(context.Background(), ownerID, appointment.ID, UpdateInput{ScheduledAt: &newTime})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateAppointmentForbiddenForOthers(t *testing.T) {
	appointment := sampleAppointment(uuid.New(), enums.AppointmentStatusPending)
	svc := mustService(t, &stubAppointmentRepo{appointment: appointment}, &stubCarReader{}, &stubCenterChecker{exists: true})

	description := "new notes"
	_, err := svc.Update(context.Background(), uuid.New(), appointment.ID, UpdateInput{Description: &description})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateAppointmentMovesCenter(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusPending)
	repo := &stubAppointmentRepo{appointment: appointment}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	newCenter := uuid.New()
	dto, err := svc.Update(context.Background(), ownerID, appointment.ID, UpdateInput{CenterID: &newCenter})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.CenterID != newCenter {
		t.Fatalf("expected center %s, got %s", newCenter, dto.CenterID)
	}
}

func TestUpdateAppointmentUnknownCenter(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusPending)
	svc := mustService(t, &stubAppointmentRepo{appointment: appointment}, &stubCarReader{}, &stubCenterChecker{exists: false})

	newCenter := uuid.New()
	_, err := svc.Update(context.Background(), ownerID, appointment.ID, UpdateInput{CenterID: &newCenter})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCancelAppointmentIdempotent(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusCancelled)
	repo := &stubAppointmentRepo{appointment: appointment}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	dto, err := svc.Cancel(context.Background(), ownerID, appointment.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dto.Status != enums.AppointmentStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", dto.Status)
	}
	if repo.statusUpdates != 0 {
		t.Fatalf("expected no status write for already cancelled booking")
	}
}

func TestCancelAppointmentOverridesConfirmed(t *testing.T) {
	ownerID := uuid.New()
	appointment := sampleAppointment(ownerID, enums.AppointmentStatusConfirmed)
	repo := &stubAppointmentRepo{appointment: appointment}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	dto, err := svc.Cancel(context.Background(), ownerID, appointment.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dto.Status != enums.AppointmentStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", dto.Status)
	}
	if repo.statusUpdates != 1 {
		t.Fatalf("expected one status write, got %d", repo.statusUpdates)
	}
}

func TestSetStatusRejectsPending(t *testing.T) {
	appointment := sampleAppointment(uuid.New(), enums.AppointmentStatusConfirmed)
	svc := mustService(t, &stubAppointmentRepo{appointment: appointment}, &stubCarReader{}, &stubCenterChecker{exists: true})

	_, err := svc.SetStatus(context.Background(), appointment.ID, enums.AppointmentStatusPending)
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestSetStatusConfirms(t *testing.T) {
	appointment := sampleAppointment(uuid.New(), enums.AppointmentStatusPending)
	repo := &stubAppointmentRepo{appointment: appointment}
	svc := mustService(t, repo, &stubCarReader{}, &stubCenterChecker{exists: true})

	dto, err := svc.SetStatus(context.Background(), appointment.ID, enums.AppointmentStatusConfirmed)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if dto.Status != enums.AppointmentStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", dto.Status)
	}
}

func mustService(t *testing.T, repo appointmentRepository, cars carReader, centers centerChecker) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Cars:    cars,
		Centers: centers,
		Now:     func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func sampleAppointment(ownerID uuid.UUID, status enums.AppointmentStatus) *models.Appointment {
	return &models.Appointment{
		ID:          uuid.New(),
		UserID:      ownerID,
		CarID:       uuid.New(),
		CenterID:    uuid.New(),
		ScheduledAt: fixedNow.Add(24 * time.Hour),
		Status:      status,
	}
}

type uniqueSlotErr struct{}

func (uniqueSlotErr) Error() string {
	return `duplicate key value violates unique constraint "appointments_car_scheduled_key"`
}

type stubCarReader struct {
	car *models.Car
	err error
}

func (s *stubCarReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.car == nil || s.car.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s.car
	return &clone, nil
}

type stubCenterChecker struct {
	exists bool
}

func (s *stubCenterChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, nil
}

type stubAppointmentRepo struct {
	appointment   *models.Appointment
	conflict      bool
	createErr     error
	statusUpdates int
}

func (s *stubAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.appointment = appointment
	return nil
}

func (s *stubAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	if s.appointment == nil || s.appointment.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s.appointment
	return &clone, nil
}

func (s *stubAppointmentRepo) ConflictExists(ctx context.Context, carID uuid.UUID, at time.Time, excludeID uuid.UUID) (bool, error) {
	return s.conflict, nil
}

func (s *stubAppointmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	if s.appointment == nil || s.appointment.UserID != userID {
		return nil, nil
	}
	return []models.Appointment{*s.appointment}, nil
}

func (s *stubAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	if s.appointment == nil {
		return nil, nil
	}
	return []models.Appointment{*s.appointment}, nil
}

func (s *stubAppointmentRepo) Save(ctx context.Context, appointment *models.Appointment) error {
	s.appointment = appointment
	return nil
}

func (s *stubAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AppointmentStatus) error {
	s.statusUpdates++
	if s.appointment != nil && s.appointment.ID == id {
		s.appointment.Status = status
	}
	return nil
}
