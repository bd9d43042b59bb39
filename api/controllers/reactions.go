package controllers

import (
	"net/http"

	"github.com/carhub-app/carhub-backend/api/responses"
	"github.com/carhub-app/carhub-backend/api/validators"
	"github.com/carhub-app/carhub-backend/internal/reactions"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/metrics"
)

type reactRequest struct {
	Type string `json:"type" validate:"required"`
}

// ReactionsPut records or replaces the caller's reaction on a post.
func ReactionsPut(svc reactions.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reactions service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		postID, err := uuidURLParam(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.React(r.Context(), actorID, postID, payload.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncReaction("set")
		responses.WriteSuccess(w, summary)
	}
}

// ReactionsDelete removes the caller's reaction; absent reactions are a
// no-op.
func ReactionsDelete(svc reactions.Service, m *metrics.Metrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reactions service unavailable"))
			return
		}

		actorID, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		postID, err := uuidURLParam(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Remove(r.Context(), actorID, postID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncReaction("removed")
		responses.WriteSuccess(w, summary)
	}
}

// ReactionsSummary tallies a post's reactions. The caller's own reaction
// is included when the request carries a valid token.
func ReactionsSummary(svc reactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reactions service unavailable"))
			return
		}

		actorID := optionalActorFromRequest(r)

		postID, err := uuidURLParam(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summarize(r.Context(), actorID, postID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
