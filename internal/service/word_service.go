package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"lexisnap/internal/cache"
	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/provider"
	"lexisnap/internal/repository"
	"lexisnap/internal/session"
	"lexisnap/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 500

// WordService is the ingestion pipeline: it turns raw tokens or photographed
// text into enriched, review-scheduled vocabulary entries.
type WordService interface {
	IngestWords(ctx context.Context, userID uuid.UUID, rawWords []string) ([]*model.WordResponse, error)
	IngestImage(ctx context.Context, userID uuid.UUID, image []byte, filename, mimeType string) ([]*model.WordResponse, error)
	CreatePreview(ctx context.Context, userID uuid.UUID, image []byte, filename, mimeType string) (*model.PreviewResponse, error)
	ConfirmImport(ctx context.Context, userID uuid.UUID, uploadID string, rawWords []string, finalize bool) ([]*model.WordResponse, error)
	CancelPreview(ctx context.Context, userID uuid.UUID, uploadID string) bool
	Regenerate(ctx context.Context, userID, wordID uuid.UUID) (*model.WordResponse, error)
	GetWord(ctx context.Context, userID, wordID uuid.UUID) (*model.WordResponse, error)
	ListWords(ctx context.Context, userID uuid.UUID, limit int) ([]*model.WordResponse, error)
}

type wordService struct {
	db           *gorm.DB
	wordRepo     repository.WordRepository
	enrichment   EnrichmentService
	reviews      ReviewService
	extractor    provider.Extractor
	sessions     session.Store
	files        *storage.FileStore
	contentCache *cache.ContentCache
}

func NewWordService(
	db *gorm.DB,
	wordRepo repository.WordRepository,
	enrichment EnrichmentService,
	reviews ReviewService,
	extractor provider.Extractor,
	sessions session.Store,
	files *storage.FileStore,
	contentCache *cache.ContentCache,
) WordService {
	return &wordService{
		db:           db,
		wordRepo:     wordRepo,
		enrichment:   enrichment,
		reviews:      reviews,
		extractor:    extractor,
		sessions:     sessions,
		files:        files,
		contentCache: contentCache,
	}
}

// enrichOptions selects which artifact families an ingestion pass refreshes.
type enrichOptions struct {
	forceMetadata bool
	forceChinese  bool
	skipAudio     bool
}

// normalizeTokens splits raw entries on whitespace and commas, lowercases
// them and deduplicates while preserving first-seen order.
func normalizeTokens(raw []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, entry := range raw {
		fields := strings.FieldsFunc(entry, func(r rune) bool {
			return unicode.IsSpace(r) || r == ','
		})
		for _, field := range fields {
			lemma := strings.ToLower(strings.TrimSpace(field))
			if lemma == "" {
				continue
			}
			if _, ok := seen[lemma]; ok {
				continue
			}
			seen[lemma] = struct{}{}
			tokens = append(tokens, lemma)
		}
	}
	return tokens
}

func mimeFromFilename(filename, declared string) string {
	if declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return "image/jpeg"
}

// upsertWord returns the existing word for the lemma or creates one. An
// existing word without a source image adopts the new one; a concurrent
// insert losing the unique-index race falls back to the winner's row.
func (s *wordService) upsertWord(ctx context.Context, userID uuid.UUID, lemma, imagePath string) (*model.Word, error) {
	existing, err := s.wordRepo.FindByLemma(ctx, s.db, userID, lemma)
	if err == nil {
		if imagePath != "" && existing.ImagePath == "" {
			updateErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return s.wordRepo.Update(ctx, tx, userID, existing.WordID, map[string]interface{}{
					"image_path": imagePath,
				})
			})
			if updateErr != nil {
				return nil, updateErr
			}
			existing.ImagePath = imagePath
		}
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	word := &model.Word{
		WordID:    uuid.New(),
		UserID:    userID,
		Lemma:     lemma,
		ImagePath: imagePath,
	}
	createErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.wordRepo.Create(ctx, tx, word)
	})
	if createErr != nil {
		// A concurrent ingest may have inserted the same lemma first.
		if winner, findErr := s.wordRepo.FindByLemma(ctx, s.db, userID, lemma); findErr == nil {
			return winner, nil
		}
		return nil, createErr
	}
	return word, nil
}

// enrichWord runs the full pipeline tail for one word: English metadata,
// Chinese supplement, pronunciation audio and the initial review schedule.
func (s *wordService) enrichWord(ctx context.Context, word *model.Word, confidence *float64, opts enrichOptions) (*model.WordResponse, error) {
	logger := middleware.GetLogger(ctx)

	meta, err := s.enrichment.EnsureEnglishMetadata(ctx, word, opts.forceMetadata, opts.skipAudio)
	if err != nil {
		return nil, err
	}
	meta, err = s.enrichment.EnsureChineseSupplement(ctx, word, opts.forceChinese)
	if err != nil {
		return nil, err
	}
	if !opts.skipAudio {
		url, err := s.enrichment.EnsurePronunciationAudio(ctx, word.UserID, word.WordID, false)
		if err != nil {
			logger.Warn("Failed to ensure pronunciation audio", "lemma", word.Lemma, "error", err)
		} else {
			word.AudioURL = url
		}
	}
	if _, err := s.reviews.ScheduleInitialReview(ctx, word.UserID, word.WordID, time.Now()); err != nil {
		return nil, err
	}

	return model.NewWordResponse(word, meta, confidence), nil
}

// IngestWords handles manually typed words end to end.
func (s *wordService) IngestWords(ctx context.Context, userID uuid.UUID, rawWords []string) ([]*model.WordResponse, error) {
	tokens := normalizeTokens(rawWords)
	if len(tokens) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "No valid words in request", "words", model.ErrInvalidInput)
	}

	responses := make([]*model.WordResponse, 0, len(tokens))
	for _, lemma := range tokens {
		word, err := s.upsertWord(ctx, userID, lemma, "")
		if err != nil {
			return nil, err
		}
		resp, err := s.enrichWord(ctx, word, nil, enrichOptions{})
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// extractCandidates runs OCR over the image, consulting the content cache so
// re-uploading the same bytes skips the provider call.
func (s *wordService) extractCandidates(ctx context.Context, image []byte, filename, mimeType string) ([]provider.OCRCandidate, error) {
	logger := middleware.GetLogger(ctx)

	var candidates []provider.OCRCandidate
	if s.contentCache.Get("ocr", string(image), &candidates) {
		return candidates, nil
	}

	candidates, err := s.extractor.ExtractWords(ctx, image, mimeFromFilename(filename, mimeType))
	if err != nil {
		return nil, fmt.Errorf("extractor.ExtractWords: %w", err)
	}
	if err := s.contentCache.Put("ocr", string(image), candidates); err != nil {
		logger.Warn("Failed to cache OCR result", "error", err)
	}
	return candidates, nil
}

// dedupeCandidates drops repeated lemmas, keeping the first occurrence.
func dedupeCandidates(candidates []provider.OCRCandidate) []provider.OCRCandidate {
	seen := make(map[string]struct{})
	var out []provider.OCRCandidate
	for _, c := range candidates {
		lemma := strings.ToLower(strings.TrimSpace(c.Lemma))
		if lemma == "" {
			continue
		}
		if _, ok := seen[lemma]; ok {
			continue
		}
		seen[lemma] = struct{}{}
		out = append(out, provider.OCRCandidate{Lemma: lemma, Confidence: c.Confidence})
	}
	return out
}

// IngestImage runs the direct image flow: every extracted word is persisted
// and enriched without a confirmation step.
func (s *wordService) IngestImage(ctx context.Context, userID uuid.UUID, image []byte, filename, mimeType string) ([]*model.WordResponse, error) {
	if len(image) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Image file is required", "image", model.ErrInvalidInput)
	}

	imagePath, err := s.files.SaveUpload(image, filename)
	if err != nil {
		return nil, err
	}

	candidates, err := s.extractCandidates(ctx, image, filename, mimeType)
	if err != nil {
		s.files.Remove(imagePath)
		return nil, err
	}
	candidates = dedupeCandidates(candidates)
	if len(candidates) == 0 {
		s.files.Remove(imagePath)
		return nil, model.NewAppError("EXTRACTION_EMPTY", "No words could be extracted from the image", "", model.ErrExtractionEmpty)
	}

	responses := make([]*model.WordResponse, 0, len(candidates))
	for _, candidate := range candidates {
		word, err := s.upsertWord(ctx, userID, candidate.Lemma, imagePath)
		if err != nil {
			return nil, err
		}
		confidence := candidate.Confidence
		resp, err := s.enrichWord(ctx, word, &confidence, enrichOptions{})
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// sweepExpired lazily expires old preview sessions and cleans up the images
// they referenced. It runs at the start of every preview operation instead
// of on a background timer.
func (s *wordService) sweepExpired(ctx context.Context, now time.Time) {
	logger := middleware.GetLogger(ctx)
	removed := s.sessions.Sweep(now)
	for _, p := range removed {
		s.files.Remove(p.ImagePath)
	}
	if len(removed) > 0 {
		logger.Debug("Swept expired preview sessions", "count", len(removed))
	}
}

// CreatePreview stores the image, extracts candidates and opens a session
// holding them for confirmation. Nothing is persisted to the database yet.
func (s *wordService) CreatePreview(ctx context.Context, userID uuid.UUID, image []byte, filename, mimeType string) (*model.PreviewResponse, error) {
	s.sweepExpired(ctx, time.Now())

	if len(image) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Image file is required", "image", model.ErrInvalidInput)
	}

	imagePath, err := s.files.SaveUpload(image, filename)
	if err != nil {
		return nil, err
	}

	candidates, err := s.extractCandidates(ctx, image, filename, mimeType)
	if err != nil {
		s.files.Remove(imagePath)
		return nil, err
	}
	candidates = dedupeCandidates(candidates)
	if len(candidates) == 0 {
		s.files.Remove(imagePath)
		return nil, model.NewAppError("EXTRACTION_EMPTY", "No words could be extracted from the image", "", model.ErrExtractionEmpty)
	}

	uploadID := uuid.NewString()
	byLemma := make(map[string]float64, len(candidates))
	words := make([]model.PreviewCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		byLemma[candidate.Lemma] = candidate.Confidence
		words = append(words, model.PreviewCandidate{Lemma: candidate.Lemma, Confidence: candidate.Confidence})
	}

	s.sessions.Put(&session.Preview{
		UploadID:   uploadID,
		UserID:     userID,
		ImagePath:  imagePath,
		Candidates: byLemma,
		CreatedAt:  time.Now(),
	})

	return &model.PreviewResponse{UploadID: uploadID, Words: words}, nil
}

// ConfirmImport persists the selected candidates of a preview session.
// Confirmed lemmas leave the session, so a partial confirm can be followed
// by more batches; finalize (or an emptied session) closes it.
func (s *wordService) ConfirmImport(ctx context.Context, userID uuid.UUID, uploadID string, rawWords []string, finalize bool) ([]*model.WordResponse, error) {
	now := time.Now()
	s.sweepExpired(ctx, now)

	p, ok := s.sessions.Get(uploadID, userID, now)
	if !ok {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "Preview session not found or expired", "upload_id", model.ErrNotFound)
	}

	p.Lock()
	defer p.Unlock()

	// A cancel may have raced us between the lookup and the lock.
	if _, ok := s.sessions.Get(uploadID, userID, now); !ok {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "Preview session not found or expired", "upload_id", model.ErrNotFound)
	}

	var selected []string
	seen := make(map[string]struct{})
	for _, raw := range rawWords {
		lemma := strings.ToLower(strings.TrimSpace(raw))
		if lemma == "" {
			continue
		}
		if _, dup := seen[lemma]; dup {
			continue
		}
		seen[lemma] = struct{}{}
		if _, offered := p.Candidates[lemma]; offered {
			selected = append(selected, lemma)
		}
	}
	if len(selected) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "None of the requested words are in this preview", "words", model.ErrInvalidInput)
	}

	responses := make([]*model.WordResponse, 0, len(selected))
	for _, lemma := range selected {
		confidence := p.Candidates[lemma]
		word, err := s.upsertWord(ctx, userID, lemma, p.ImagePath)
		if err != nil {
			return nil, err
		}
		// Confirmation regenerates metadata and translation even for a
		// lemma that was already enriched; audio stays as is.
		resp, err := s.enrichWord(ctx, word, &confidence, enrichOptions{
			forceMetadata: true,
			forceChinese:  true,
		})
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	for _, lemma := range selected {
		delete(p.Candidates, lemma)
	}
	if finalize || len(p.Candidates) == 0 {
		// Confirmed words keep referencing the stored image, so only the
		// session entry goes away.
		s.sessions.Delete(uploadID)
	}
	return responses, nil
}

// CancelPreview discards a session and its stored image. Cancelling an
// unknown or expired session reports removed=false rather than an error.
func (s *wordService) CancelPreview(ctx context.Context, userID uuid.UUID, uploadID string) bool {
	now := time.Now()
	s.sweepExpired(ctx, now)

	p, ok := s.sessions.Get(uploadID, userID, now)
	if !ok {
		return false
	}

	// Wait for any in-flight confirm batch before taking the image away.
	p.Lock()
	defer p.Unlock()

	if _, ok := s.sessions.Get(uploadID, userID, now); !ok {
		return false
	}
	s.sessions.Delete(uploadID)
	s.files.Remove(p.ImagePath)
	return true
}

// Regenerate re-runs text enrichment for a word, bypassing stored metadata
// but leaving existing audio artifacts in place.
func (s *wordService) Regenerate(ctx context.Context, userID, wordID uuid.UUID) (*model.WordResponse, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		return nil, err
	}
	return s.enrichWord(ctx, word, nil, enrichOptions{
		forceMetadata: true,
		forceChinese:  true,
		skipAudio:     true,
	})
}

func (s *wordService) GetWord(ctx context.Context, userID, wordID uuid.UUID) (*model.WordResponse, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		return nil, err
	}
	return model.NewWordResponse(word, word.Metadata, nil), nil
}

func (s *wordService) ListWords(ctx context.Context, userID uuid.UUID, limit int) ([]*model.WordResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	words, err := s.wordRepo.FindByUser(ctx, s.db, userID, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.WordResponse, 0, len(words))
	for _, word := range words {
		responses = append(responses, model.NewWordResponse(word, word.Metadata, nil))
	}
	return responses, nil
}
