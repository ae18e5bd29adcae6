package service

import (
	"context"
	"testing"
	"time"

	"lexisnap/internal/cache"
	"lexisnap/internal/config"
	"lexisnap/internal/model"
	"lexisnap/internal/provider"
	"lexisnap/internal/repository"
	"lexisnap/internal/session"
	"lexisnap/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubExtractor returns a fixed candidate list, standing in for OCR.
type stubExtractor struct {
	candidates []provider.OCRCandidate
	err        error
}

func (s *stubExtractor) ExtractWords(ctx context.Context, image []byte, mimeType string) ([]provider.OCRCandidate, error) {
	return s.candidates, s.err
}

type wordServiceEnv struct {
	db        *gorm.DB
	svc       WordService
	extractor *stubExtractor
	sessions  session.Store
	files     *storage.FileStore
	definer   *countingDefiner
}

func newWordServiceEnv(t *testing.T, previewTTL time.Duration) *wordServiceEnv {
	t.Helper()
	db := setupServiceDB(t)
	files := storage.NewFileStore(t.TempDir())
	contentCache := cache.New(files.CacheDir())
	sessions := session.NewMemoryStore(previewTTL)
	extractor := &stubExtractor{}
	definer := &countingDefiner{inner: provider.NewOfflineDefiner()}

	wordRepo := repository.NewGormWordRepository()
	metaRepo := repository.NewGormMetadataRepository()
	cfg := &config.Config{}
	cfg.App.ReviewLimit = 20

	enrichment := NewEnrichmentService(db, wordRepo, metaRepo, definer, provider.NewOfflineSynthesizer(), contentCache, files, "en-US-AriaNeural")
	reviews := NewReviewService(db, repository.NewGormReviewRepository(), repository.NewGormStatsRepository(), cfg)
	svc := NewWordService(db, wordRepo, enrichment, reviews, extractor, sessions, files, contentCache)

	return &wordServiceEnv{
		db:        db,
		svc:       svc,
		extractor: extractor,
		sessions:  sessions,
		files:     files,
		definer:   definer,
	}
}

func Test_normalizeTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "splits on whitespace and commas",
			raw:  []string{"hello, world  foo"},
			want: []string{"hello", "world", "foo"},
		},
		{
			name: "lowercases and deduplicates preserving order",
			raw:  []string{"Apple", "BANANA apple", "banana"},
			want: []string{"apple", "banana"},
		},
		{
			name: "drops empty entries",
			raw:  []string{"", "  ", ", ,"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTokens(tt.raw))
		})
	}
}

func Test_wordService_IngestWords(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	words, err := env.svc.IngestWords(ctx, userID, []string{"Apple, banana", "apple"})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Lemma)
	assert.Equal(t, "banana", words[1].Lemma)
	assert.NotEmpty(t, words[0].EnDefinition)
	assert.NotEmpty(t, words[0].ZhDefinition)
	assert.NotEmpty(t, words[0].AudioURL)
	assert.Nil(t, words[0].Confidence)

	// Each new word got an initial review schedule.
	var reviewCount int64
	require.NoError(t, env.db.Model(&model.Review{}).Where("user_id = ?", userID).Count(&reviewCount).Error)
	assert.EqualValues(t, 2, reviewCount)

	// Re-ingesting is idempotent: no duplicate rows, no extra reviews.
	again, err := env.svc.IngestWords(ctx, userID, []string{"apple"})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, words[0].WordID, again[0].WordID)

	var wordCount int64
	require.NoError(t, env.db.Model(&model.Word{}).Where("user_id = ?", userID).Count(&wordCount).Error)
	assert.EqualValues(t, 2, wordCount)
}

func Test_wordService_IngestWords_NoValidTokens(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)

	_, err := env.svc.IngestWords(ctx, uuid.New(), []string{"  ", ","})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func Test_wordService_IngestImage(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{
		{Lemma: "cat", Confidence: 0.9},
		{Lemma: "dog", Confidence: 0.3},
		{Lemma: "cat", Confidence: 0.5}, // duplicate, dropped
	}

	words, err := env.svc.IngestImage(ctx, userID, []byte("fake-image"), "photo.jpg", "image/jpeg")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "cat", words[0].Lemma)
	require.NotNil(t, words[0].Confidence)
	assert.InDelta(t, 0.9, *words[0].Confidence, 1e-9)
	assert.NotEmpty(t, words[0].ImagePath)
	assert.Equal(t, words[0].ImagePath, words[1].ImagePath)
	assert.True(t, env.files.Exists(words[0].ImagePath))
}

func Test_wordService_IngestImage_ExtractionEmpty(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)

	env.extractor.candidates = nil
	_, err := env.svc.IngestImage(ctx, uuid.New(), []byte("blank-image"), "photo.jpg", "image/jpeg")
	assert.ErrorIs(t, err, model.ErrExtractionEmpty)
}

func Test_wordService_PreviewConfirmFlow(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{
		{Lemma: "cat", Confidence: 0.9},
		{Lemma: "dog", Confidence: 0.3},
	}

	preview, err := env.svc.CreatePreview(ctx, userID, []byte("pets"), "pets.png", "image/png")
	require.NoError(t, err)
	require.Len(t, preview.Words, 2)
	assert.NotEmpty(t, preview.UploadID)

	// Nothing persisted until confirmation.
	var wordCount int64
	require.NoError(t, env.db.Model(&model.Word{}).Count(&wordCount).Error)
	assert.EqualValues(t, 0, wordCount)

	// Confirm one candidate, keep the session open.
	finalize := false
	words, err := env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"cat", "zebra"}, finalize)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "cat", words[0].Lemma)
	require.NotNil(t, words[0].Confidence)
	assert.InDelta(t, 0.9, *words[0].Confidence, 1e-9)

	// Confirming the remaining candidate empties and closes the session.
	words, err = env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"dog"}, false)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "dog", words[0].Lemma)

	_, err = env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"cat"}, false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_wordService_ConfirmImport_Validation(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{{Lemma: "cat", Confidence: 0.9}}
	preview, err := env.svc.CreatePreview(ctx, userID, []byte("cat"), "cat.png", "image/png")
	require.NoError(t, err)

	t.Run("unknown session", func(t *testing.T) {
		_, err := env.svc.ConfirmImport(ctx, userID, "missing", []string{"cat"}, true)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("another user's session looks missing", func(t *testing.T) {
		_, err := env.svc.ConfirmImport(ctx, uuid.New(), preview.UploadID, []string{"cat"}, true)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("selection outside the candidate set", func(t *testing.T) {
		_, err := env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"zebra"}, true)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func Test_wordService_ConfirmImport_RefreshesEnrichment(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	// "cat" is fully enriched before the image flow touches it.
	_, err := env.svc.IngestWords(ctx, userID, []string{"cat"})
	require.NoError(t, err)
	enBefore := env.definer.enCalls.Load()
	zhBefore := env.definer.zhCalls.Load()

	env.extractor.candidates = []provider.OCRCandidate{{Lemma: "cat", Confidence: 0.8}}
	preview, err := env.svc.CreatePreview(ctx, userID, []byte("cat again"), "cat.png", "image/png")
	require.NoError(t, err)

	words, err := env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"cat"}, true)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Greater(t, env.definer.enCalls.Load(), enBefore, "confirm regenerates English metadata")
	assert.Greater(t, env.definer.zhCalls.Load(), zhBefore, "confirm regenerates the Chinese supplement")

	// Still one row: the existing word was refreshed, not duplicated.
	var wordCount int64
	require.NoError(t, env.db.Model(&model.Word{}).Where("user_id = ?", userID).Count(&wordCount).Error)
	assert.EqualValues(t, 1, wordCount)
}

func Test_wordService_ConfirmImport_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 0) // zero TTL expires sessions immediately
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{{Lemma: "cat", Confidence: 0.9}}
	preview, err := env.svc.CreatePreview(ctx, userID, []byte("cat"), "cat.png", "image/png")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = env.svc.ConfirmImport(ctx, userID, preview.UploadID, []string{"cat"}, true)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_wordService_CancelPreview(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{{Lemma: "cat", Confidence: 0.9}}
	preview, err := env.svc.CreatePreview(ctx, userID, []byte("cat"), "cat.png", "image/png")
	require.NoError(t, err)

	p, ok := env.sessions.Get(preview.UploadID, userID, time.Now())
	require.True(t, ok)
	imagePath := p.ImagePath
	require.True(t, env.files.Exists(imagePath))

	assert.True(t, env.svc.CancelPreview(ctx, userID, preview.UploadID))
	assert.False(t, env.files.Exists(imagePath), "cancel removes the stored image")

	// Idempotent: a second cancel reports nothing removed.
	assert.False(t, env.svc.CancelPreview(ctx, userID, preview.UploadID))
}

func Test_wordService_CancelPreview_WaitsForConfirmBatch(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	env.extractor.candidates = []provider.OCRCandidate{{Lemma: "cat", Confidence: 0.9}}
	preview, err := env.svc.CreatePreview(ctx, userID, []byte("cat"), "cat.png", "image/png")
	require.NoError(t, err)

	p, ok := env.sessions.Get(preview.UploadID, userID, time.Now())
	require.True(t, ok)
	p.Lock()

	done := make(chan bool, 1)
	go func() { done <- env.svc.CancelPreview(ctx, userID, preview.UploadID) }()

	select {
	case <-done:
		t.Fatal("cancel completed while a batch held the session")
	case <-time.After(50 * time.Millisecond):
	}
	assert.True(t, env.files.Exists(p.ImagePath), "image survives until the batch releases the session")

	p.Unlock()
	select {
	case removed := <-done:
		assert.True(t, removed)
	case <-time.After(time.Second):
		t.Fatal("cancel did not finish after the session was released")
	}
	assert.False(t, env.files.Exists(p.ImagePath))
}

func Test_wordService_Regenerate(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	words, err := env.svc.IngestWords(ctx, userID, []string{"mango"})
	require.NoError(t, err)
	require.Len(t, words, 1)
	callsAfterIngest := env.definer.enCalls.Load()

	resp, err := env.svc.Regenerate(ctx, userID, words[0].WordID)
	require.NoError(t, err)
	assert.Equal(t, "mango", resp.Lemma)
	assert.Greater(t, env.definer.enCalls.Load(), callsAfterIngest, "regenerate bypasses stored metadata")

	_, err = env.svc.Regenerate(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_wordService_GetAndList(t *testing.T) {
	ctx := context.Background()
	env := newWordServiceEnv(t, 10*time.Minute)
	userID := uuid.New()

	words, err := env.svc.IngestWords(ctx, userID, []string{"one two three"})
	require.NoError(t, err)
	require.Len(t, words, 3)

	got, err := env.svc.GetWord(ctx, userID, words[0].WordID)
	require.NoError(t, err)
	assert.Equal(t, words[0].Lemma, got.Lemma)
	assert.NotEmpty(t, got.EnDefinition)

	// Words belong to their owner only.
	_, err = env.svc.GetWord(ctx, uuid.New(), words[0].WordID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	listed, err := env.svc.ListWords(ctx, userID, 2)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = env.svc.ListWords(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}
