package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type profileContextKey struct{}

func profileFromContext(ctx context.Context) (domain.Profile, bool) {
	profile, ok := ctx.Value(profileContextKey{}).(domain.Profile)
	return profile, ok
}

// authMiddleware resolves the bearer token into a caller profile and
// stores it on the request context. Unauthenticated requests never reach
// the handlers.
func (rt *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		profile, err := rt.profiles.ProfileByToken(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey{}, *profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(headerValue string) string {
	headerValue = strings.TrimSpace(headerValue)
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(headerValue, bearerPrefix))
}
