package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/demeco/devis-console/internal/logger"
)

// CorrelationID tags every request with a correlation id, exposed in the
// response headers and attached to the request context for logging
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := uuid.New().String()
		ctx := context.WithValue(r.Context(), logger.CorrelationIDKey, correlationID)

		w.Header().Set("X-Correlation-ID", correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recovery recovers from panics and returns 500 Internal Server Error
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := r.Context()
				logger.WithContext(ctx).WithField("panic", rec).Error("Panic recovered")
				respondError(w, ctx, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
