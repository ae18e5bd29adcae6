// Package provider contains the external enrichment adapters: OCR word
// extraction, bilingual definitions and speech synthesis. Each capability
// has a live implementation and a deterministic offline one; the choice is
// made once at construction from configuration. Live adapters absorb
// provider failures and degrade to the offline behavior instead of
// returning errors, so callers never block on provider unavailability.
package provider

import "context"

// OCRCandidate is one word extracted from an image. Confidence is
// informational only and never gates acceptance.
type OCRCandidate struct {
	Lemma      string  `json:"lemma"`
	Confidence float64 `json:"confidence"`
}

// WordSense is a definition plus example sentence in one language.
type WordSense struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Extractor pulls vocabulary words out of an image. An empty result is a
// valid response, not an error.
type Extractor interface {
	ExtractWords(ctx context.Context, image []byte, mimeType string) ([]OCRCandidate, error)
}

// Definer produces English metadata and Chinese supplements for a lemma.
type Definer interface {
	EnglishMetadata(ctx context.Context, lemma string) (WordSense, error)
	ChineseSupplement(ctx context.Context, lemma string, english WordSense) (WordSense, error)
	// Model identifies the backing model for provenance tracking.
	Model() string
}

// Synthesizer turns text into audio bytes. The returned extension matches
// the container format of the bytes (".mp3" live, ".wav" fallback).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (data []byte, ext string, err error)
}
