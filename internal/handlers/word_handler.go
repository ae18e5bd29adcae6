package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/service"
	"lexisnap/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxImageBytes caps uploaded photos at 10 MiB.
const maxImageBytes = 10 << 20

type WordHandler struct {
	service    service.WordService
	enrichment service.EnrichmentService
	logger     *slog.Logger
}

func NewWordHandler(s service.WordService, enrichment service.EnrichmentService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service:    s,
		enrichment: enrichment,
		logger:     logger,
	}
}

// PostWords ingests manually typed words.
func (h *WordHandler) PostWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWords"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostWordsRequest
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

	words, err := h.service.IngestWords(r.Context(), userID, req.Words)
	if err != nil {
		logger.Error("Error ingesting words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Words ingested successfully", slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusCreated, words, logger)
}

// GetWords lists the user's vocabulary, newest first.
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

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

	words, err := h.service.ListWords(r.Context(), userID, limit)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.WordResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// GetWord returns a single enriched word.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "word_id must be a valid UUID.", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.GetWord(r.Context(), userID, wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// readImageForm pulls the image part out of a multipart form.
func readImageForm(r *http.Request) ([]byte, string, string, error) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, "", "", model.NewAppError("INVALID_REQUEST_BODY", "Expected a multipart form with an image part.", "image", model.ErrInvalidInput)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", "", model.NewAppError("VALIDATION_ERROR", "An image file is required.", "image", model.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, "", "", model.NewAppError("INVALID_REQUEST_BODY", "Failed to read the uploaded image.", "image", model.ErrInvalidInput)
	}
	if len(data) > maxImageBytes {
		return nil, "", "", model.NewAppError("VALIDATION_ERROR", "The uploaded image is too large.", "image", model.ErrInvalidInput)
	}
	return data, header.Filename, header.Header.Get("Content-Type"), nil
}

// PostWordsImage ingests every word extracted from a photo, skipping the
// preview step.
func (h *WordHandler) PostWordsImage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWordsImage"))

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

	words, err := h.service.IngestImage(r.Context(), userID, image, filename, mimeType)
	if err != nil {
		logger.Error("Error ingesting image in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Image ingested successfully", slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusCreated, words, logger)
}

// Regenerate re-runs text enrichment for one word.
func (h *WordHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Regenerate"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "word_id must be a valid UUID.", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.Regenerate(r.Context(), userID, wordID)
	if err != nil {
		logger.Error("Error regenerating word in service", slog.Any("error", err), slog.String("word_id", wordID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word regenerated successfully", slog.String("word_id", wordID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// ensureAudio is the shared body of the three audio endpoints.
func (h *WordHandler) ensureAudio(w http.ResponseWriter, r *http.Request, name string,
	ensure func(r *http.Request, userID, wordID uuid.UUID) (string, error)) {
	logger := h.logger.With(slog.String("handler", name))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "Authentication information is missing.", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	wordID, err := uuid.Parse(chi.URLParam(r, "word_id"))
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "word_id must be a valid UUID.", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	url, err := ensure(r, userID, wordID)
	if err != nil {
		logger.Error("Error ensuring audio in service", slog.Any("error", err), slog.String("word_id", wordID.String()))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.AudioURLResponse{AudioURL: url}, logger)
}

func forceParam(r *http.Request) bool {
	return r.URL.Query().Get("force") == "true"
}

// GetPronunciationAudio ensures and returns the lemma's pronunciation audio.
func (h *WordHandler) GetPronunciationAudio(w http.ResponseWriter, r *http.Request) {
	h.ensureAudio(w, r, "GetPronunciationAudio", func(r *http.Request, userID, wordID uuid.UUID) (string, error) {
		return h.enrichment.EnsurePronunciationAudio(r.Context(), userID, wordID, forceParam(r))
	})
}

// GetDefinitionAudio ensures and returns audio for the English definition.
func (h *WordHandler) GetDefinitionAudio(w http.ResponseWriter, r *http.Request) {
	h.ensureAudio(w, r, "GetDefinitionAudio", func(r *http.Request, userID, wordID uuid.UUID) (string, error) {
		return h.enrichment.EnsureDefinitionAudio(r.Context(), userID, wordID, forceParam(r))
	})
}

// GetExampleAudio ensures and returns audio for the English example.
func (h *WordHandler) GetExampleAudio(w http.ResponseWriter, r *http.Request) {
	h.ensureAudio(w, r, "GetExampleAudio", func(r *http.Request, userID, wordID uuid.UUID) (string, error) {
		return h.enrichment.EnsureExampleAudio(r.Context(), userID, wordID, forceParam(r))
	})
}
