package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/service"
	"lexisnap/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetDueReviews returns the user's due-review queue, earliest first.
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueReviews"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			appErr := model.NewAppError("VALIDATION_ERROR", "limit must be a non-negative integer.", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = parsed
	}

	reviews, err := h.service.GetDueReviews(r.Context(), userID, limit, time.Now())
	if err != nil {
		logger.Error("Error fetching due reviews in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if reviews == nil {
		reviews = []*model.DueReviewResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, reviews, logger)
}

// PostReviewResult records one answer and returns the new schedule.
func (h *ReviewHandler) PostReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReviewResult"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	reviewID, err := uuid.Parse(chi.URLParam(r, "review_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "review_id must be a valid UUID.", "review_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.SubmitReviewRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	result, err := h.service.SubmitReviewResult(r.Context(), userID, reviewID, req.Rating, time.Now())
	if err != nil {
		logger.Warn("Error submitting review result in service", slog.Any("error", err), slog.String("review_id", reviewID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review result recorded",
		slog.String("review_id", reviewID.String()),
		slog.String("rating", result.Rating),
		slog.Int("interval_minutes", result.IntervalMinutes),
	)
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
