package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lexisnap/internal/model"
)

// HandleError interprets an error and writes the matching JSON error
// response. This is the single place application errors become HTTP.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail}
	} else {
		switch {
		case errors.Is(err, model.ErrNotFound):
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "NOT_FOUND", Message: "The requested resource was not found."}}
		case errors.Is(err, model.ErrInvalidInput):
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "INVALID_INPUT", Message: "The request input is invalid."}}
		case errors.Is(err, model.ErrExtractionEmpty):
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "EXTRACTION_EMPTY", Message: "No words could be extracted from the image."}}
		case errors.Is(err, model.ErrMetadataMissing):
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "METADATA_MISSING", Message: "English metadata must exist before a translation supplement."}}
		case errors.Is(err, model.ErrUnsupportedRating):
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "UNSUPPORTED_RATING", Message: "The review rating label is not recognized."}}
		default:
			logger.Error("Unhandled error", slog.Any("error", err))
			errResp = model.APIErrorResponse{Error: model.ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An internal server error occurred."}}
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode maps application errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrUnsupportedRating):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrExtractionEmpty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrMetadataMissing), errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Failed to encode response."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
