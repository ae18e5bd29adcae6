package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey is the context key under which the request-scoped logger lives.
type logCtxKey struct{}

// LoggingMiddleware attaches a request-scoped logger to the context and
// emits a summary line when the request completes.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)
			r = r.WithContext(ctx)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			latency := time.Since(startTime)
			statusCode := ww.Status()

			logLevel := slog.LevelInfo
			if statusCode >= 500 {
				logLevel = slog.LevelError
			} else if statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), logLevel, "Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", statusCode,
				"bytes_out", ww.BytesWritten(),
				"latency_ms", float64(latency.Nanoseconds())/1e6,
			)
		})
	}
}

// GetLogger returns the request-scoped logger, or the default logger when
// the context has none.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
