package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexisnap/internal/cache"
	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/provider"
	"lexisnap/internal/repository"
	"lexisnap/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// EnrichmentService fills in the provider-derived artifacts for a word:
// English metadata, the Chinese supplement and synthesized audio. Every
// Ensure* method is idempotent; force bypasses the stored artifact and
// regenerates it.
type EnrichmentService interface {
	EnsureEnglishMetadata(ctx context.Context, word *model.Word, force, skipAudio bool) (*model.WordMetadata, error)
	EnsureChineseSupplement(ctx context.Context, word *model.Word, force bool) (*model.WordMetadata, error)
	EnsurePronunciationAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error)
	EnsureDefinitionAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error)
	EnsureExampleAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error)
}

type enrichmentService struct {
	db           *gorm.DB
	wordRepo     repository.WordRepository
	metaRepo     repository.MetadataRepository
	definer      provider.Definer
	synthesizer  provider.Synthesizer
	contentCache *cache.ContentCache
	files        *storage.FileStore
	voice        string
	group        singleflight.Group
}

func NewEnrichmentService(
	db *gorm.DB,
	wordRepo repository.WordRepository,
	metaRepo repository.MetadataRepository,
	definer provider.Definer,
	synthesizer provider.Synthesizer,
	contentCache *cache.ContentCache,
	files *storage.FileStore,
	voice string,
) EnrichmentService {
	return &enrichmentService{
		db:           db,
		wordRepo:     wordRepo,
		metaRepo:     metaRepo,
		definer:      definer,
		synthesizer:  synthesizer,
		contentCache: contentCache,
		files:        files,
		voice:        voice,
	}
}

// englishSense resolves the English definition and example for a lemma,
// preferring the content cache and collapsing concurrent lookups for the
// same lemma into one provider call. force skips the cache read and
// refreshes the stored artifact.
func (s *enrichmentService) englishSense(ctx context.Context, lemma string, force bool) (provider.WordSense, error) {
	logger := middleware.GetLogger(ctx)

	value, err, _ := s.group.Do("en-meta:"+lemma, func() (interface{}, error) {
		var cached provider.WordSense
		if !force && s.contentCache.Get("en-meta", lemma, &cached) {
			return cached, nil
		}
		sense, err := s.definer.EnglishMetadata(ctx, lemma)
		if err != nil {
			return provider.WordSense{}, fmt.Errorf("definer.EnglishMetadata: %w", err)
		}
		if err := s.contentCache.Put("en-meta", lemma, sense); err != nil {
			logger.Warn("Failed to cache English metadata", "lemma", lemma, "error", err)
		}
		return sense, nil
	})
	if err != nil {
		return provider.WordSense{}, err
	}
	return value.(provider.WordSense), nil
}

func (s *enrichmentService) chineseSense(ctx context.Context, lemma string, english provider.WordSense, force bool) (provider.WordSense, error) {
	logger := middleware.GetLogger(ctx)

	// The supplement depends on the English text it translates, so the
	// cache key covers all three inputs.
	input := strings.Join([]string{lemma, english.Definition, english.Example}, "\n")
	value, err, _ := s.group.Do("zh-meta:"+cache.Key(input), func() (interface{}, error) {
		var cached provider.WordSense
		if !force && s.contentCache.Get("zh-meta", input, &cached) {
			return cached, nil
		}
		sense, err := s.definer.ChineseSupplement(ctx, lemma, english)
		if err != nil {
			return provider.WordSense{}, fmt.Errorf("definer.ChineseSupplement: %w", err)
		}
		if err := s.contentCache.Put("zh-meta", input, sense); err != nil {
			logger.Warn("Failed to cache Chinese supplement", "lemma", lemma, "error", err)
		}
		return sense, nil
	})
	if err != nil {
		return provider.WordSense{}, err
	}
	return value.(provider.WordSense), nil
}

// ensureAudioFile synthesizes speech for the text unless a matching
// artifact already exists on disk. Filenames are content-addressed over the
// voice and text, so identical text reuses the same file across words.
func (s *enrichmentService) ensureAudioFile(ctx context.Context, prefix, text string, force bool) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	hash := cache.Key(strings.Join([]string{prefix, s.voice, text}, ":"))
	extensions := []string{".mp3", ".wav"}

	if force {
		for _, ext := range extensions {
			s.files.Remove(s.files.AudioPath(prefix + "-" + hash + ext))
		}
	} else {
		for _, ext := range extensions {
			path := s.files.AudioPath(prefix + "-" + hash + ext)
			if s.files.Exists(path) {
				return s.files.PublicURL(path), nil
			}
		}
	}

	value, err, _ := s.group.Do("audio:"+hash, func() (interface{}, error) {
		data, ext, err := s.synthesizer.Synthesize(ctx, text, s.voice)
		if err != nil {
			return "", fmt.Errorf("synthesizer.Synthesize: %w", err)
		}
		path, err := s.files.SaveAudio(prefix+"-"+hash+ext, data)
		if err != nil {
			return "", fmt.Errorf("files.SaveAudio: %w", err)
		}
		return s.files.PublicURL(path), nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// EnsureEnglishMetadata guarantees a metadata row with English definition,
// example and their audio. With skipAudio the text fields are refreshed but
// audio generation is left to a later call.
func (s *enrichmentService) EnsureEnglishMetadata(ctx context.Context, word *model.Word, force, skipAudio bool) (*model.WordMetadata, error) {
	logger := middleware.GetLogger(ctx)

	lemma := strings.TrimSpace(word.Lemma)
	if lemma == "" {
		return nil, fmt.Errorf("%w: word has no lemma", model.ErrInvalidInput)
	}

	existing, err := s.metaRepo.FindByWordID(ctx, s.db, word.WordID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.EnDefinition != "" && !force {
		return existing, nil
	}

	sense, err := s.englishSense(ctx, lemma, force)
	if err != nil {
		logger.Error("Failed to resolve English metadata", "lemma", lemma, "error", err)
		return nil, err
	}

	var definitionAudioURL, exampleAudioURL string
	if !skipAudio {
		if definitionAudioURL, err = s.ensureAudioFile(ctx, "definition", sense.Definition, force); err != nil {
			logger.Warn("Failed to synthesize definition audio", "lemma", lemma, "error", err)
		}
		if exampleAudioURL, err = s.ensureAudioFile(ctx, "example", sense.Example, force); err != nil {
			logger.Warn("Failed to synthesize example audio", "lemma", lemma, "error", err)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if existing == nil {
			meta := &model.WordMetadata{
				WordID:               word.WordID,
				EnDefinition:         sense.Definition,
				EnExample:            sense.Example,
				EnDefinitionAudioURL: definitionAudioURL,
				EnExampleAudioURL:    exampleAudioURL,
				ProviderModel:        s.definer.Model(),
				UpdatedAt:            time.Now(),
			}
			return s.metaRepo.Create(ctx, tx, meta)
		}
		updates := map[string]interface{}{
			"en_definition":  sense.Definition,
			"en_example":     sense.Example,
			"provider_model": s.definer.Model(),
		}
		// Keep existing audio references when this pass skipped synthesis.
		if definitionAudioURL != "" {
			updates["en_definition_audio_url"] = definitionAudioURL
		}
		if exampleAudioURL != "" {
			updates["en_example_audio_url"] = exampleAudioURL
		}
		return s.metaRepo.Update(ctx, tx, word.WordID, updates)
	})
	if err != nil {
		return nil, err
	}

	return s.metaRepo.FindByWordID(ctx, s.db, word.WordID)
}

// EnsureChineseSupplement fills the Chinese fields of an existing metadata
// row. Calling it before the English pass is an ordering bug surfaced as
// ErrMetadataMissing.
func (s *enrichmentService) EnsureChineseSupplement(ctx context.Context, word *model.Word, force bool) (*model.WordMetadata, error) {
	logger := middleware.GetLogger(ctx)

	meta, err := s.metaRepo.FindByWordID(ctx, s.db, word.WordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: word %s has no English metadata yet", model.ErrMetadataMissing, word.WordID)
		}
		return nil, err
	}
	if meta.ZhDefinition != "" && meta.ZhExample != "" && !force {
		return meta, nil
	}

	english := provider.WordSense{Definition: meta.EnDefinition, Example: meta.EnExample}
	sense, err := s.chineseSense(ctx, word.Lemma, english, force)
	if err != nil {
		logger.Error("Failed to resolve Chinese supplement", "lemma", word.Lemma, "error", err)
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.metaRepo.Update(ctx, tx, word.WordID, map[string]interface{}{
			"zh_definition": sense.Definition,
			"zh_example":    sense.Example,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.metaRepo.FindByWordID(ctx, s.db, word.WordID)
}

// EnsurePronunciationAudio guarantees pronunciation audio for the lemma and
// stores its URL on the word row.
func (s *enrichmentService) EnsurePronunciationAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		return "", err
	}
	if !force && word.AudioURL != "" && s.files.Exists(s.files.ResolvePath(word.AudioURL)) {
		return word.AudioURL, nil
	}

	url, err := s.ensureAudioFile(ctx, "word", word.Lemma, force)
	if err != nil {
		return "", err
	}
	if url == word.AudioURL {
		return url, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.wordRepo.Update(ctx, tx, userID, wordID, map[string]interface{}{
			"audio_url": url,
		})
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// EnsureDefinitionAudio guarantees audio for the stored English definition.
func (s *enrichmentService) EnsureDefinitionAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		return "", err
	}
	meta := word.Metadata
	if meta == nil || meta.EnDefinition == "" {
		return "", fmt.Errorf("%w: word %s has no definition to voice", model.ErrMetadataMissing, wordID)
	}
	if !force && meta.EnDefinitionAudioURL != "" && s.files.Exists(s.files.ResolvePath(meta.EnDefinitionAudioURL)) {
		return meta.EnDefinitionAudioURL, nil
	}

	url, err := s.ensureAudioFile(ctx, "definition", meta.EnDefinition, force)
	if err != nil {
		return "", err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.metaRepo.Update(ctx, tx, wordID, map[string]interface{}{
			"en_definition_audio_url": url,
		})
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// EnsureExampleAudio guarantees audio for the stored English example.
func (s *enrichmentService) EnsureExampleAudio(ctx context.Context, userID, wordID uuid.UUID, force bool) (string, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		return "", err
	}
	meta := word.Metadata
	if meta == nil || meta.EnExample == "" {
		return "", fmt.Errorf("%w: word %s has no example to voice", model.ErrMetadataMissing, wordID)
	}
	if !force && meta.EnExampleAudioURL != "" && s.files.Exists(s.files.ResolvePath(meta.EnExampleAudioURL)) {
		return meta.EnExampleAudioURL, nil
	}

	url, err := s.ensureAudioFile(ctx, "example", meta.EnExample, force)
	if err != nil {
		return "", err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.metaRepo.Update(ctx, tx, wordID, map[string]interface{}{
			"en_example_audio_url": url,
		})
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
