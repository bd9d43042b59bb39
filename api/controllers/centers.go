package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/carhub-app/carhub-backend/api/responses"
	"github.com/carhub-app/carhub-backend/api/validators"
	"github.com/carhub-app/carhub-backend/internal/centers"
	"github.com/carhub-app/carhub-backend/internal/reputation"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
)

type createCenterRequest struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Description *string `json:"description,omitempty"`
}

func (r createCenterRequest) toInput() centers.CreateCenterInput {
	return centers.CreateCenterInput{
		Name:        strings.TrimSpace(r.Name),
		Address:     strings.TrimSpace(r.Address),
		City:        strings.TrimSpace(r.City),
		Phone:       r.Phone,
		Email:       r.Email,
		Description: r.Description,
	}
}

type updateCenterRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=1"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=1"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Description *string `json:"description,omitempty"`
}

func (r updateCenterRequest) toInput() centers.UpdateCenterInput {
	return centers.UpdateCenterInput{
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		Phone:       r.Phone,
		Email:       r.Email,
		Description: r.Description,
	}
}

// CentersList returns the center catalog, optionally filtered by city.
func CentersList(svc centers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "centers service unavailable"))
			return
		}

		city := strings.TrimSpace(r.URL.Query().Get("city"))
		list, err := svc.List(r.Context(), city)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// CentersGet returns a single center by id.
func CentersGet(svc centers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "centers service unavailable"))
			return
		}

		centerID, err := uuidURLParam(r, "centerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		center, err := svc.Get(r.Context(), centerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, center)
	}
}

// CentersCreate registers a new service center.
func CentersCreate(svc centers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "centers service unavailable"))
			return
		}

		var payload createCenterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		center, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, center)
	}
}

// CentersUpdate patches a service center.
func CentersUpdate(svc centers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "centers service unavailable"))
			return
		}

		centerID, err := uuidURLParam(r, "centerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCenterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		center, err := svc.Update(r.Context(), centerID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, center)
	}
}

// CentersDelete removes a service center.
func CentersDelete(svc centers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "centers service unavailable"))
			return
		}

		centerID, err := uuidURLParam(r, "centerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), centerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

type voteRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// CentersVote records or replaces the caller's monthly rating.
func CentersVote(svc reputation.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reputation service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		centerID, err := uuidURLParam(r, "centerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload voteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Vote(r.Context(), actorID, centerID, payload.Rating)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncVote(result.Outcome)
		responses.WriteSuccess(w, result)
	}
}

// CentersTop returns the monthly leaderboard, defaulting to the current
// calendar month.
func CentersTop(svc reputation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reputation service unavailable"))
			return
		}

		year, err := intQueryParam(r, "year")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		month, err := intQueryParam(r, "month")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := intQueryParam(r, "limit")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rankings, err := svc.MonthlyTop(r.Context(), year, month, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rankings)
	}
}

func intQueryParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return value, nil
}
