package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lexisnap/internal/config"
	"lexisnap/internal/model"
	"lexisnap/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware validates the Authorization bearer token and places the
// owner's UUID (the token subject) into the request context. Token issuance
// happens elsewhere; this middleware only resolves the owner identity the
// core operations require as a parameter.
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorization header format must be 'Bearer {token}'.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// jwt.Parse verifies both the signature and the expiry claim.
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.Auth.JWTSecret), nil
			})
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The token is invalid.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				logger.Warn("JWT auth failed: Unknown claims type or invalid token")
				appErr := model.NewAppError("INVALID_TOKEN", "The token is invalid.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The token has no subject claim.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The token subject is not a valid user id.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated owner's UUID.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return value, nil
}
