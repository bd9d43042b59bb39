package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/api/responses"
	"github.com/carhub-app/carhub-backend/api/validators"
	"github.com/carhub-app/carhub-backend/internal/appointments"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
)

type createAppointmentRequest struct {
	CarID       uuid.UUID `json:"car_id" validate:"required"`
	CenterID    uuid.UUID `json:"center_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Description string    `json:"description,omitempty"`
}

func (r createAppointmentRequest) toInput() appointments.CreateInput {
	return appointments.CreateInput{
		CarID:       r.CarID,
		CenterID:    r.CenterID,
		ScheduledAt: r.ScheduledAt,
		Description: r.Description,
	}
}

type updateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Description *string    `json:"description,omitempty"`
	CenterID    *uuid.UUID `json:"center_id,omitempty"`
}

func (r updateAppointmentRequest) toInput() appointments.UpdateInput {
	return appointments.UpdateInput{
		ScheduledAt: r.ScheduledAt,
		Description: r.Description,
		CenterID:    r.CenterID,
	}
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AppointmentsCreate books a car into a service center.
func AppointmentsCreate(svc appointments.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointment, err := svc.Create(r.Context(), actorID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncAppointment("created")
		responses.WriteSuccess(w, appointment)
	}
}

// AppointmentsMine lists the caller's bookings.
func AppointmentsMine(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AppointmentsGet returns one booking visible to the caller.
func AppointmentsGet(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointmentID, err := uuidURLParam(r, "appointmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointment, err := svc.Get(r.Context(), actorID, actorRoleFromRequest(r), appointmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appointment)
	}
}

// AppointmentsUpdate reschedules a pending booking.
func AppointmentsUpdate(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointmentID, err := uuidURLParam(r, "appointmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAppointmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointment, err := svc.Update(r.Context(), actorID, appointmentID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appointment)
	}
}

// AppointmentsCancel cancels the caller's booking.
func AppointmentsCancel(svc appointments.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointmentID, err := uuidURLParam(r, "appointmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		appointment, err := svc.Cancel(r.Context(), actorID, appointmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncAppointment("cancelled")
		responses.WriteSuccess(w, appointment)
	}
}

// AdminAppointmentsList returns every booking for administrators.
func AdminAppointmentsList(svc appointments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminAppointmentsSetStatus confirms or cancels any booking.
func AdminAppointmentsSetStatus(svc appointments.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "appointments service unavailable"))
			return
		}

		appointmentID, err := uuidURLParam(r, "appointmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.AppointmentStatus(strings.ToUpper(strings.TrimSpace(payload.Status)))
		appointment, err := svc.SetStatus(r.Context(), appointmentID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncAppointment("status_set")
		responses.WriteSuccess(w, appointment)
	}
}
