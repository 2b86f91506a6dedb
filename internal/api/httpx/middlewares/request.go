package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/constants"
)

// AttachRequestMetadata copies the chi request ID and the X-Idempotency-Key
// header into the request context. It must run after middleware.RequestID.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(constants.HeaderXIdempotencyKey)

		ctx := constants.WithRequestMetadata(r.Context(), requestID, idempotencyKey)
		if requestID != "" {
			w.Header().Set(middleware.RequestIDHeader, requestID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
