package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"aisolutions/internal/metrics"
	"aisolutions/internal/util"
)

type contextKey string

const claimsKey contextKey = "claims"

// ErrorWriter renders an error response
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireAdmin returns middleware that runs Authorize on every request and
// short-circuits with writeErr before next runs when it fails.
func (s *AuthService) RequireAdmin(writeErr ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.Authorize(r.Header.Get("Authorization"))
			if err != nil {
				reason := GuardReason(err)
				metrics.RecordGuardRejection(reason)
				s.log.Info("admin request rejected",
					zap.String("reason", reason),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				writeErr(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the admin claims stored by RequireAdmin
func ClaimsFromContext(ctx context.Context) (*util.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*util.Claims)
	return claims, ok
}
