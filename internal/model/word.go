package model

import (
	"time"

	"github.com/google/uuid"
)

// Word is a vocabulary entry owned by a single user. The lemma is stored
// normalized (trimmed, lowercased) and is unique per owner.
type Word struct {
	WordID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_lemma,unique" json:"-"`
	Lemma     string    `gorm:"not null;index:idx_user_lemma,unique" json:"lemma"`
	ImagePath string    `json:"image_path,omitempty"` // source photo, if ingested from one
	AudioURL  string    `json:"audio_url,omitempty"`  // pronunciation audio
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Preload association
	Metadata *WordMetadata `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (Word) TableName() string {
	return "words"
}

// WordMetadata holds the enrichment result for a word, one-to-one.
// Field families (English, Chinese, audio) are refreshed independently.
type WordMetadata struct {
	WordID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	EnDefinition         string    `json:"en_definition"`
	EnExample            string    `json:"en_example"`
	ZhDefinition         string    `json:"zh_definition"`
	ZhExample            string    `json:"zh_example"`
	EnDefinitionAudioURL string    `json:"en_definition_audio_url,omitempty"`
	EnExampleAudioURL    string    `json:"en_example_audio_url,omitempty"`
	ProviderModel        string    `json:"provider_model,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (WordMetadata) TableName() string {
	return "word_metadata"
}

// PostWordsRequest is the manual ingestion request DTO. Each entry may hold
// several raw tokens separated by whitespace or commas.
type PostWordsRequest struct {
	Words []string `json:"words" validate:"required,min=1"`
}

// ConfirmImportRequest accepts lemmas out of a preview session. Finalize
// defaults to true; a client confirming in batches sends false until the
// last batch.
type ConfirmImportRequest struct {
	UploadID string   `json:"upload_id" validate:"required"`
	Words    []string `json:"words" validate:"required,min=1"`
	Finalize *bool    `json:"finalize,omitempty"`
}

// WordResponse is the enriched word projection returned by ingestion and
// listing endpoints.
type WordResponse struct {
	WordID               uuid.UUID `json:"word_id"`
	Lemma                string    `json:"lemma"`
	ImagePath            string    `json:"image_path,omitempty"`
	AudioURL             string    `json:"audio_url,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	Confidence           *float64  `json:"confidence,omitempty"` // OCR confidence, informational only
	EnDefinition         string    `json:"en_definition,omitempty"`
	EnExample            string    `json:"en_example,omitempty"`
	ZhDefinition         string    `json:"zh_definition,omitempty"`
	ZhExample            string    `json:"zh_example,omitempty"`
	EnDefinitionAudioURL string    `json:"en_definition_audio_url,omitempty"`
	EnExampleAudioURL    string    `json:"en_example_audio_url,omitempty"`
}

// NewWordResponse builds the projection from a word and its (possibly nil)
// metadata row.
func NewWordResponse(word *Word, meta *WordMetadata, confidence *float64) *WordResponse {
	resp := &WordResponse{
		WordID:     word.WordID,
		Lemma:      word.Lemma,
		ImagePath:  word.ImagePath,
		AudioURL:   word.AudioURL,
		CreatedAt:  word.CreatedAt,
		Confidence: confidence,
	}
	if meta != nil {
		resp.EnDefinition = meta.EnDefinition
		resp.EnExample = meta.EnExample
		resp.ZhDefinition = meta.ZhDefinition
		resp.ZhExample = meta.ZhExample
		resp.EnDefinitionAudioURL = meta.EnDefinitionAudioURL
		resp.EnExampleAudioURL = meta.EnExampleAudioURL
	}
	return resp
}

// AudioURLResponse wraps a single ensured audio reference.
type AudioURLResponse struct {
	AudioURL string `json:"audio_url"`
}
