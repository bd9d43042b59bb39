package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/db/models"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAppointmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	appointments := `
CREATE TABLE IF NOT EXISTS appointments (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  car_id TEXT NOT NULL,
  center_id TEXT NOT NULL,
  scheduled_at DATETIME NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT appointments_car_scheduled_key UNIQUE (car_id, scheduled_at)
);`
	require.NoError(t, db.Exec("DROP TABLE IF EXISTS appointments").Error)
	require.NoError(t, db.Exec(appointments).Error)
	return db
}

func newAppointment(carID uuid.UUID, at time.Time) *models.Appointment {
	return &models.Appointment{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		CarID:       carID,
		CenterID:    uuid.New(),
		ScheduledAt: at,
		Status:      enums.AppointmentStatusPending,
	}
}

func TestRepoRejectsDoubleBooking(t *testing.T) {
	db := setupAppointmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	carID := uuid.New()
	slot := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newAppointment(carID, slot)))

	err := repo.Create(ctx, newAppointment(carID, slot))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRepoConflictExistsExcludesSelf(t *testing.T) {
	db := setupAppointmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	carID := uuid.New()
	slot := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	booked := newAppointment(carID, slot)
	require.NoError(t, repo.Create(ctx, booked))

	taken, err := repo.ConflictExists(ctx, carID, slot, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ConflictExists(ctx, carID, slot, booked.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a booking does not conflict with itself")

	taken, err = repo.ConflictExists(ctx, carID, slot.Add(time.Hour), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepoListByUserSortsBySchedule(t *testing.T) {
	db := setupAppointmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	later := newAppointment(uuid.New(), time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC))
	sooner := newAppointment(uuid.New(), time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC))
	later.UserID = userID
	sooner.UserID = userID
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))

	rows, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sooner.ID, rows[0].ID)
	assert.Equal(t, later.ID, rows[1].ID)
}
