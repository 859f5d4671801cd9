package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hpcstack/telemetry/internal/telemetry/domain"
	"github.com/hpcstack/telemetry/internal/telemetry/service"
	"github.com/hpcstack/telemetry/internal/telemetry/store"
	"github.com/hpcstack/telemetry/pkg/httpx"
	"github.com/hpcstack/telemetry/pkg/slogx"
)

type userCtxKey struct{}

// UserFromContext returns the authenticated user injected by RequireAuth.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// RequireAuth gates a handler behind bearer authentication. The token is
// verified and its subject re-resolved to a live user before any data-access
// work happens; the user ends up in the request context.
func RequireAuth(auth Authenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				httpx.WriteBearerError(w, "not authenticated")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			user, err := auth.Authenticate(ctx, raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrUnauthorized):
					httpx.WriteBearerError(w, "could not validate credentials")
				case errors.Is(err, store.ErrConnectionUnavailable):
					httpx.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
				default:
					log.Error("authentication failed unexpectedly", "err", err)
					httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			ctx = context.WithValue(ctx, userCtxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
