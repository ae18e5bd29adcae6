package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"lexisnap/internal/cache"
	"lexisnap/internal/model"
	"lexisnap/internal/provider"
	"lexisnap/internal/repository"
	"lexisnap/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingDefiner wraps the offline definer and counts provider calls, so
// tests can tell a cache hit from a provider round trip.
type countingDefiner struct {
	inner    provider.Definer
	enCalls  atomic.Int32
	zhCalls  atomic.Int32
}

func (d *countingDefiner) EnglishMetadata(ctx context.Context, lemma string) (provider.WordSense, error) {
	d.enCalls.Add(1)
	return d.inner.EnglishMetadata(ctx, lemma)
}

func (d *countingDefiner) ChineseSupplement(ctx context.Context, lemma string, english provider.WordSense) (provider.WordSense, error) {
	d.zhCalls.Add(1)
	return d.inner.ChineseSupplement(ctx, lemma, english)
}

func (d *countingDefiner) Model() string { return d.inner.Model() }

type enrichmentEnv struct {
	db      *gorm.DB
	svc     EnrichmentService
	definer *countingDefiner
	files   *storage.FileStore
}

func newEnrichmentEnv(t *testing.T) *enrichmentEnv {
	t.Helper()
	db := setupServiceDB(t)
	files := storage.NewFileStore(t.TempDir())
	definer := &countingDefiner{inner: provider.NewOfflineDefiner()}
	svc := NewEnrichmentService(
		db,
		repository.NewGormWordRepository(),
		repository.NewGormMetadataRepository(),
		definer,
		provider.NewOfflineSynthesizer(),
		cache.New(files.CacheDir()),
		files,
		"en-US-AriaNeural",
	)
	return &enrichmentEnv{db: db, svc: svc, definer: definer, files: files}
}

func Test_enrichmentService_EnsureEnglishMetadata(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)
	userID := uuid.New()
	word := seedWord(t, env.db, userID, "apple")

	meta, err := env.svc.EnsureEnglishMetadata(ctx, word, false, false)
	require.NoError(t, err)
	assert.Contains(t, meta.EnDefinition, "apple")
	assert.Contains(t, meta.EnExample, "apple")
	assert.Equal(t, "offline", meta.ProviderModel)
	assert.True(t, strings.HasPrefix(meta.EnDefinitionAudioURL, "/uploads/audio/"))
	assert.True(t, strings.HasPrefix(meta.EnExampleAudioURL, "/uploads/audio/"))
	assert.True(t, env.files.Exists(env.files.ResolvePath(meta.EnDefinitionAudioURL)))
	assert.EqualValues(t, 1, env.definer.enCalls.Load())

	// A second pass without force reuses the stored row.
	again, err := env.svc.EnsureEnglishMetadata(ctx, word, false, false)
	require.NoError(t, err)
	assert.Equal(t, meta.EnDefinition, again.EnDefinition)
	assert.EqualValues(t, 1, env.definer.enCalls.Load())

	// Force refreshes the text fields through the provider again.
	_, err = env.svc.EnsureEnglishMetadata(ctx, word, true, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, env.definer.enCalls.Load())
}

func Test_enrichmentService_EnsureEnglishMetadata_SkipAudio(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)
	word := seedWord(t, env.db, uuid.New(), "banana")

	meta, err := env.svc.EnsureEnglishMetadata(ctx, word, false, true)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.EnDefinition)
	assert.Empty(t, meta.EnDefinitionAudioURL)
	assert.Empty(t, meta.EnExampleAudioURL)
}

func Test_enrichmentService_EnglishMetadata_CacheSharedAcrossUsers(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)

	first := seedWord(t, env.db, uuid.New(), "cherry")
	second := seedWord(t, env.db, uuid.New(), "cherry")

	_, err := env.svc.EnsureEnglishMetadata(ctx, first, false, true)
	require.NoError(t, err)
	_, err = env.svc.EnsureEnglishMetadata(ctx, second, false, true)
	require.NoError(t, err)

	// Same lemma for a different owner is served from the content cache.
	assert.EqualValues(t, 1, env.definer.enCalls.Load())
}

func Test_enrichmentService_EnsureChineseSupplement(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)
	word := seedWord(t, env.db, uuid.New(), "dog")

	// The Chinese pass requires the English row to exist first.
	_, err := env.svc.EnsureChineseSupplement(ctx, word, false)
	assert.ErrorIs(t, err, model.ErrMetadataMissing)

	_, err = env.svc.EnsureEnglishMetadata(ctx, word, false, true)
	require.NoError(t, err)

	meta, err := env.svc.EnsureChineseSupplement(ctx, word, false)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.ZhDefinition)
	assert.NotEmpty(t, meta.ZhExample)
	assert.EqualValues(t, 1, env.definer.zhCalls.Load())

	// Idempotent without force.
	_, err = env.svc.EnsureChineseSupplement(ctx, word, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, env.definer.zhCalls.Load())

	// Force bypasses both the stored row and the content cache.
	_, err = env.svc.EnsureChineseSupplement(ctx, word, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, env.definer.zhCalls.Load())
}

func Test_enrichmentService_EnsurePronunciationAudio(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)
	userID := uuid.New()
	word := seedWord(t, env.db, userID, "echo")

	url, err := env.svc.EnsurePronunciationAudio(ctx, userID, word.WordID, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/audio/word-"))
	assert.True(t, env.files.Exists(env.files.ResolvePath(url)))

	var stored model.Word
	require.NoError(t, env.db.Where("word_id = ?", word.WordID).First(&stored).Error)
	assert.Equal(t, url, stored.AudioURL)

	// Stable across repeated calls.
	again, err := env.svc.EnsurePronunciationAudio(ctx, userID, word.WordID, false)
	require.NoError(t, err)
	assert.Equal(t, url, again)

	// Unknown or foreign word ids surface as not found.
	_, err = env.svc.EnsurePronunciationAudio(ctx, uuid.New(), word.WordID, false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_enrichmentService_EnsureDefinitionAudio(t *testing.T) {
	ctx := context.Background()
	env := newEnrichmentEnv(t)
	userID := uuid.New()
	word := seedWord(t, env.db, userID, "fig")

	// No metadata yet.
	_, err := env.svc.EnsureDefinitionAudio(ctx, userID, word.WordID, false)
	assert.ErrorIs(t, err, model.ErrMetadataMissing)

	_, err = env.svc.EnsureEnglishMetadata(ctx, word, false, true)
	require.NoError(t, err)

	url, err := env.svc.EnsureDefinitionAudio(ctx, userID, word.WordID, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/audio/definition-"))

	var meta model.WordMetadata
	require.NoError(t, env.db.Where("word_id = ?", word.WordID).First(&meta).Error)
	assert.Equal(t, url, meta.EnDefinitionAudioURL)

	exampleURL, err := env.svc.EnsureExampleAudio(ctx, userID, word.WordID, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(exampleURL, "/uploads/audio/example-"))
	assert.NotEqual(t, url, exampleURL)
}
