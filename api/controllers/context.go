package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carhub-app/carhub-backend/api/middleware"
	"github.com/carhub-app/carhub-backend/pkg/enums"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
)

// actorFromRequest extracts the authenticated user's id from the request
// context. Routes behind RequireAuth always carry one.
func actorFromRequest(r *http.Request) (uuid.UUID, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

// optionalActorFromRequest returns the caller's id, or uuid.Nil for
// anonymous requests.
func optionalActorFromRequest(r *http.Request) uuid.UUID {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func actorRoleFromRequest(r *http.Request) enums.Role {
	return enums.Role(middleware.RoleFromContext(r.Context()))
}

func uuidURLParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
