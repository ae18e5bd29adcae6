package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexisnap/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: model.ErrNotFound, want: http.StatusNotFound},
		{name: "invalid input", err: model.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unsupported rating", err: model.ErrUnsupportedRating, want: http.StatusBadRequest},
		{name: "extraction empty", err: model.ErrExtractionEmpty, want: http.StatusUnprocessableEntity},
		{name: "metadata missing", err: model.ErrMetadataMissing, want: http.StatusConflict},
		{name: "conflict", err: model.ErrConflict, want: http.StatusConflict},
		{name: "forbidden", err: model.ErrForbidden, want: http.StatusForbidden},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: fmt.Errorf("context: %w", model.ErrNotFound), want: http.StatusNotFound},
		{
			name: "app error uses its wrapped sentinel",
			err:  model.NewAppError("VALIDATION_ERROR", "bad", "field", model.ErrInvalidInput),
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError_AppErrorDetailPassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	appErr := model.NewAppError("SESSION_NOT_FOUND", "Preview session not found or expired", "upload_id", model.ErrNotFound)

	HandleError(rr, nil, appErr)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "upload_id", resp.Error.Field)
}

func TestHandleError_SentinelGetsDefaultMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	HandleError(rr, nil, model.ErrExtractionEmpty)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "EXTRACTION_EMPTY", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}
