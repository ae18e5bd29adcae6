package middleware

import (
	"context"
	"net/http"

	"lexisnap/internal/model"
	"lexisnap/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware is the development-time replacement for JWT auth.
// It takes the owner id straight from the X-User-ID header, without any
// token verification.
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID header is required.", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "value", userIDStr)
			appErr := model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID header is not a valid UUID.", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
