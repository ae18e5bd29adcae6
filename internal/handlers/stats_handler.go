package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/service"
	"lexisnap/internal/webutil"
)

type StatsHandler struct {
	service service.StatsService
	logger  *slog.Logger
}

func NewStatsHandler(s service.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		service: s,
		logger:  logger,
	}
}

// GetDailyStats returns per-day activity counters for a date range. The
// range defaults to the last 30 days.
func (h *StatsHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDailyStats"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		now := time.Now().UTC()
		if end == "" {
			end = now.Format(time.DateOnly)
		}
		if start == "" {
			start = now.AddDate(0, 0, -29).Format(time.DateOnly)
		}
	}

	stats, err := h.service.Summarize(r.Context(), userID, start, end)
	if err != nil {
		logger.Warn("Error summarizing stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if stats == nil {
		stats = []*model.DailyStatResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
