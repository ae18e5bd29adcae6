package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lexisnap/internal/handlers"
	"lexisnap/internal/model"

	svc_mocks "lexisnap/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newImageRequest builds a multipart request carrying one image part.
func newImageRequest(t *testing.T, target string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, target, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestWordHandler_PostWords(t *testing.T) {
	userID := uuid.New()
	created := []*model.WordResponse{
		{WordID: uuid.New(), Lemma: "apple", EnDefinition: "a fruit"},
	}

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(m *svc_mocks.WordService)
		wantStatus int
	}{
		{
			name: "ingests the words",
			body: model.PostWordsRequest{Words: []string{"apple"}},
			setupMock: func(m *svc_mocks.WordService) {
				m.On("IngestWords", mock.Anything, userID, []string{"apple"}).
					Return(created, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty word list fails validation",
			body:       model.PostWordsRequest{Words: []string{}},
			setupMock:  func(m *svc_mocks.WordService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"words": [`,
			setupMock:  func(m *svc_mocks.WordService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service rejects whitespace-only tokens",
			body: model.PostWordsRequest{Words: []string{"  "}},
			setupMock: func(m *svc_mocks.WordService) {
				m.On("IngestWords", mock.Anything, userID, []string{"  "}).
					Return(nil, model.ErrInvalidInput).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svc_mocks.WordService)
			tt.setupMock(mockService)
			handler := handlers.NewWordHandler(mockService, new(svc_mocks.EnrichmentService), testLogger)

			req := newJSONRequest(t, http.MethodPost, "/api/v1/words", tt.body)
			req = req.WithContext(withUser(req.Context(), userID))

			rr := httptest.NewRecorder()
			handler.PostWords(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var got []*model.WordResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				require.Len(t, got, 1)
				assert.Equal(t, "apple", got[0].Lemma)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestWordHandler_GetWord(t *testing.T) {
	userID := uuid.New()
	wordID := uuid.New()

	tests := []struct {
		name       string
		param      string
		setupMock  func(m *svc_mocks.WordService)
		wantStatus int
	}{
		{
			name:  "returns the word",
			param: wordID.String(),
			setupMock: func(m *svc_mocks.WordService) {
				m.On("GetWord", mock.Anything, userID, wordID).
					Return(&model.WordResponse{WordID: wordID, Lemma: "apple"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid uuid",
			param:      "nope",
			setupMock:  func(m *svc_mocks.WordService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "unknown word",
			param: wordID.String(),
			setupMock: func(m *svc_mocks.WordService) {
				m.On("GetWord", mock.Anything, userID, wordID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svc_mocks.WordService)
			tt.setupMock(mockService)
			handler := handlers.NewWordHandler(mockService, new(svc_mocks.EnrichmentService), testLogger)

			req := newJSONRequest(t, http.MethodGet, "/api/v1/words/"+tt.param, nil)
			ctx := withUser(req.Context(), userID)
			ctx = withChiParam(ctx, "word_id", tt.param)
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			handler.GetWord(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestWordHandler_PostWordsImage(t *testing.T) {
	userID := uuid.New()

	t.Run("ingests the extracted words", func(t *testing.T) {
		mockService := new(svc_mocks.WordService)
		mockService.On("IngestImage", mock.Anything, userID, []byte("fake-image"), "photo.jpg", mock.AnythingOfType("string")).
			Return([]*model.WordResponse{{WordID: uuid.New(), Lemma: "cat"}}, nil).Once()
		handler := handlers.NewWordHandler(mockService, new(svc_mocks.EnrichmentService), testLogger)

		req := newImageRequest(t, "/api/v1/words/image", []byte("fake-image"))
		req = req.WithContext(withUser(req.Context(), userID))

		rr := httptest.NewRecorder()
		handler.PostWordsImage(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("extraction empty maps to 422", func(t *testing.T) {
		mockService := new(svc_mocks.WordService)
		mockService.On("IngestImage", mock.Anything, userID, mock.Anything, "photo.jpg", mock.AnythingOfType("string")).
			Return(nil, model.ErrExtractionEmpty).Once()
		handler := handlers.NewWordHandler(mockService, new(svc_mocks.EnrichmentService), testLogger)

		req := newImageRequest(t, "/api/v1/words/image", []byte("blank"))
		req = req.WithContext(withUser(req.Context(), userID))

		rr := httptest.NewRecorder()
		handler.PostWordsImage(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("missing image part", func(t *testing.T) {
		mockService := new(svc_mocks.WordService)
		handler := handlers.NewWordHandler(mockService, new(svc_mocks.EnrichmentService), testLogger)

		req := newJSONRequest(t, http.MethodPost, "/api/v1/words/image", map[string]string{"nope": "x"})
		req = req.WithContext(withUser(req.Context(), userID))

		rr := httptest.NewRecorder()
		handler.PostWordsImage(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestWordHandler_AudioEndpoints(t *testing.T) {
	userID := uuid.New()
	wordID := uuid.New()

	t.Run("pronunciation audio", func(t *testing.T) {
		mockEnrichment := new(svc_mocks.EnrichmentService)
		mockEnrichment.On("EnsurePronunciationAudio", mock.Anything, userID, wordID, false).
			Return("/uploads/audio/word-abc.mp3", nil).Once()
		handler := handlers.NewWordHandler(new(svc_mocks.WordService), mockEnrichment, testLogger)

		req := newJSONRequest(t, http.MethodGet, "/api/v1/words/"+wordID.String()+"/audio", nil)
		ctx := withUser(req.Context(), userID)
		ctx = withChiParam(ctx, "word_id", wordID.String())
		req = req.WithContext(ctx)

		rr := httptest.NewRecorder()
		handler.GetPronunciationAudio(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got model.AudioURLResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "/uploads/audio/word-abc.mp3", got.AudioURL)
		mockEnrichment.AssertExpectations(t)
	})

	t.Run("force query flag is honored", func(t *testing.T) {
		mockEnrichment := new(svc_mocks.EnrichmentService)
		mockEnrichment.On("EnsureDefinitionAudio", mock.Anything, userID, wordID, true).
			Return("/uploads/audio/definition-abc.mp3", nil).Once()
		handler := handlers.NewWordHandler(new(svc_mocks.WordService), mockEnrichment, testLogger)

		req := newJSONRequest(t, http.MethodGet, "/api/v1/words/"+wordID.String()+"/definition-audio?force=true", nil)
		ctx := withUser(req.Context(), userID)
		ctx = withChiParam(ctx, "word_id", wordID.String())
		req = req.WithContext(ctx)

		rr := httptest.NewRecorder()
		handler.GetDefinitionAudio(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		mockEnrichment.AssertExpectations(t)
	})

	t.Run("missing metadata maps to 409", func(t *testing.T) {
		mockEnrichment := new(svc_mocks.EnrichmentService)
		mockEnrichment.On("EnsureExampleAudio", mock.Anything, userID, wordID, false).
			Return("", model.ErrMetadataMissing).Once()
		handler := handlers.NewWordHandler(new(svc_mocks.WordService), mockEnrichment, testLogger)

		req := newJSONRequest(t, http.MethodGet, "/api/v1/words/"+wordID.String()+"/example-audio", nil)
		ctx := withUser(req.Context(), userID)
		ctx = withChiParam(ctx, "word_id", wordID.String())
		req = req.WithContext(ctx)

		rr := httptest.NewRecorder()
		handler.GetExampleAudio(rr, req)
		assert.Equal(t, http.StatusConflict, rr.Code)
		mockEnrichment.AssertExpectations(t)
	})
}
