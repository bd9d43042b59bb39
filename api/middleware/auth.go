package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carhub-app/carhub-backend/api/responses"
	pkgAuth "github.com/carhub-app/carhub-backend/pkg/auth"
	"github.com/carhub-app/carhub-backend/pkg/config"
	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/google/uuid"
)

// IdentityChecker confirms the token subject still exists.
type IdentityChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Authenticate parses a bearer token when present and seeds the request
// context with the caller's identity. Requests without a usable token proceed
// anonymously; route guards decide whether that is acceptable.
func Authenticate(cfg config.JWTConfig, identities IdentityChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "reason", err.Error()), "discarding unparseable bearer token")
				}
				next.ServeHTTP(w, r)
				return
			}

			if identities != nil {
				ok, err := identities.Exists(r.Context(), claims.UserID)
				if err != nil || !ok {
					if logg != nil && err != nil {
						logg.Warn(logg.WithField(r.Context(), "reason", err.Error()), "identity lookup failed; treating request as anonymous")
					}
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
