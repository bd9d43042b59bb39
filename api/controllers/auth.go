package controllers

import (
	"net/http"

	"github.com/carhub-app/carhub-backend/api/responses"
	"github.com/carhub-app/carhub-backend/api/validators"
	"github.com/carhub-app/carhub-backend/internal/auth"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
)

// Register creates a new account from the submitted profile.
func Register(svc auth.RegisterService, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), payload)
		if err != nil {
			m.IncAuthAttempt("register", "failure")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncAuthAttempt("register", "success")
		responses.WriteSuccess(w, user)
	}
}

// Login exchanges credentials for an access token.
func Login(svc auth.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload)
		if err != nil {
			m.IncAuthAttempt("login", "failure")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncAuthAttempt("login", "success")
		responses.WriteSuccess(w, resp)
	}
}
