package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/service"
	"lexisnap/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// PreviewHandler serves the interactive image-import flow: upload a photo,
// review the extracted candidates, then confirm or cancel.
type PreviewHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewPreviewHandler(s service.WordService, logger *slog.Logger) *PreviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreviewHandler{
		service: s,
		logger:  logger,
	}
}

// PostPreview extracts candidates from an uploaded photo and opens a
// confirmation session.
func (h *PreviewHandler) PostPreview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostPreview"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	image, filename, mimeType, err := readImageForm(r)
	if err != nil {
		logger.Warn("Rejected image upload", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	preview, err := h.service.CreatePreview(r.Context(), userID, image, filename, mimeType)
	if err != nil {
		logger.Error("Error creating preview in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Preview created successfully",
		slog.String("upload_id", preview.UploadID),
		slog.Int("candidates", len(preview.Words)),
	)
	webutil.RespondWithJSON(w, http.StatusOK, preview, logger)
}

// PostConfirm persists the selected candidates of a preview session.
func (h *PreviewHandler) PostConfirm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostConfirm"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.ConfirmImportRequest
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

	finalize := true
	if req.Finalize != nil {
		finalize = *req.Finalize
	}

	words, err := h.service.ConfirmImport(r.Context(), userID, req.UploadID, req.Words, finalize)
	if err != nil {
		logger.Error("Error confirming import in service", slog.Any("error", err), slog.String("upload_id", req.UploadID))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Preview confirmed successfully",
		slog.String("upload_id", req.UploadID),
		slog.Int("count", len(words)),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, words, logger)
}

// DeletePreview cancels a session and discards its stored image.
func (h *PreviewHandler) DeletePreview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeletePreview"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	uploadID := chi.URLParam(r, "upload_id")
	removed := h.service.CancelPreview(r.Context(), userID, uploadID)

	logger.Info("Preview cancel handled", slog.String("upload_id", uploadID), slog.Bool("removed", removed))
	webutil.RespondWithJSON(w, http.StatusOK, model.CancelPreviewResponse{Removed: removed}, logger)
}
