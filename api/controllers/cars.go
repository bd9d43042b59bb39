package controllers

import (
	"net/http"

	"github.com/carhub-app/carhub-backend/api/responses"
	"github.com/carhub-app/carhub-backend/api/validators"
	"github.com/carhub-app/carhub-backend/internal/cars"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
)

type createCarRequest struct {
	Brand        string  `json:"brand" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required"`
	LicensePlate string  `json:"license_plate" validate:"required"`
	Color        *string `json:"color,omitempty"`
	Mileage      *int    `json:"mileage,omitempty" validate:"omitempty,min=0"`
}

func (r createCarRequest) toInput() cars.CreateCarInput {
	return cars.CreateCarInput{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		Color:        r.Color,
		Mileage:      r.Mileage,
	}
}

type updateCarRequest struct {
	Brand        *string `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model        *string `json:"model,omitempty" validate:"omitempty,min=1"`
	Year         *int    `json:"year,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty" validate:"omitempty,min=1"`
	Color        *string `json:"color,omitempty"`
	Mileage      *int    `json:"mileage,omitempty" validate:"omitempty,min=0"`
}

func (r updateCarRequest) toInput() cars.UpdateCarInput {
	return cars.UpdateCarInput{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		LicensePlate: r.LicensePlate,
		Color:        r.Color,
		Mileage:      r.Mileage,
	}
}

// CarsList returns the public vehicle registry.
func CarsList(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
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

// CarsMine returns the caller's registered vehicles.
func CarsMine(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
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

// CarsGet returns a single vehicle by id.
func CarsGet(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
			return
		}

		carID, err := uuidURLParam(r, "carId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Get(r.Context(), carID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, car)
	}
}

// CarsCreate registers a new vehicle owned by the caller.
func CarsCreate(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCarRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Create(r.Context(), actorID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, car)
	}
}

// CarsUpdate patches a vehicle the caller owns.
func CarsUpdate(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		carID, err := uuidURLParam(r, "carId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCarRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		car, err := svc.Update(r.Context(), actorID, actorRoleFromRequest(r), carID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, car)
	}
}

// CarsDelete removes a vehicle the caller owns.
func CarsDelete(svc cars.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cars service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		carID, err := uuidURLParam(r, "carId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actorID, actorRoleFromRequest(r), carID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
