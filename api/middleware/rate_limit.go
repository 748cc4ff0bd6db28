package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/carmodifyx/modifyx-backend/api/responses"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles a surface per user with a fixed window counter.
// Image generation is the expensive call this protects.
func RateLimit(store rateLimiterStore, name string, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || limit <= 0 || window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := name + ":" + UserIDFromContext(r.Context())
			allowed, _, err := store.FixedWindowAllow(r.Context(), scope, limit, window)
			if err != nil {
				// Fail open: a throttle outage must not take the endpoint down.
				if logg != nil {
					logg.Error(r.Context(), "rate limit check failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded").
					WithDetails(map[string]any{"retry_after_seconds": int(window.Seconds())}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
