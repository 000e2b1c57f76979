package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
)

// SessionTokenHeader carries the opaque per-user session token, separate
// from the Authorization header used by the client key.
const SessionTokenHeader = "X-Session-Token"

type contextKey string

const sessionContextKey = contextKey("session")

// SessionFromContext returns the identity snapshot attached by RequireAuth.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(models.Session)
	return s, ok
}

// TokenFromRequest returns the raw session token from the request headers.
func TokenFromRequest(r *http.Request) string {
	return r.Header.Get(SessionTokenHeader)
}

// RequireAuth rejects requests without a resolvable session and attaches the
// identity snapshot to the request context for downstream handlers.
func RequireAuth(authSvc services.AuthServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized - No session token provided")
				return
			}

			snapshot, err := authSvc.Verify(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, snapshot)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireModerator rejects requests whose session role lacks moderator
// access. It must be nested inside RequireAuth so authentication failures
// are always reported before role failures.
func RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := SessionFromContext(r.Context())
		if !ok {
			// Misordered middleware; report as an auth failure, not a
			// role failure.
			log.Error().Msg("RequireModerator ran without a session in context")
			writeError(w, http.StatusUnauthorized, "Unauthorized - No session token provided")
			return
		}
		if !auth.HasModeratorAccess(snapshot.Role) {
			writeError(w, http.StatusForbidden, "Forbidden - Moderator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
