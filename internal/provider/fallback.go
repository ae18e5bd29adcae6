package provider

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Offline fallback outputs. These are deterministic so that repeated runs
// without credentials produce stable artifacts and cache entries.

func fallbackOCRCandidates() []OCRCandidate {
	return []OCRCandidate{{Lemma: "example", Confidence: 0.42}}
}

func fallbackEnglishSense(lemma string) WordSense {
	return WordSense{
		Definition: fmt.Sprintf("%s is a placeholder definition generated for development.", lemma),
		Example:    fmt.Sprintf("This is an example sentence using the word %s.", lemma),
	}
}

func fallbackChineseSense(lemma string) WordSense {
	return WordSense{
		Definition: fmt.Sprintf("%s 的占位中文释义，用于开发阶段。", lemma),
		Example:    fmt.Sprintf("这里是包含 %s 的中文示例句。", lemma),
	}
}

// SilentWAV builds a silent 16-bit PCM mono WAV of the given duration. It is
// the offline stand-in for synthesized speech and keeps the same container
// format across runs.
func SilentWAV(durationMs, sampleRate int) []byte {
	samples := durationMs * sampleRate / 1000
	if samples < 1 {
		samples = 1
	}
	const bytesPerSample = 2
	dataSize := samples * bytesPerSample
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*bytesPerSample))
	binary.LittleEndian.PutUint16(buf[32:34], bytesPerSample)
	binary.LittleEndian.PutUint16(buf[34:36], 16) // bits per sample
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	// sample data stays zeroed (silence)
	return buf
}

// OfflineExtractor is the credential-less OCR implementation.
type OfflineExtractor struct{}

func NewOfflineExtractor() *OfflineExtractor {
	return &OfflineExtractor{}
}

func (e *OfflineExtractor) ExtractWords(ctx context.Context, image []byte, mimeType string) ([]OCRCandidate, error) {
	if len(image) == 0 {
		return nil, errors.New("image bytes are required")
	}
	return fallbackOCRCandidates(), nil
}

// OfflineDefiner returns placeholder definitions without any network call.
type OfflineDefiner struct{}

func NewOfflineDefiner() *OfflineDefiner {
	return &OfflineDefiner{}
}

func (d *OfflineDefiner) EnglishMetadata(ctx context.Context, lemma string) (WordSense, error) {
	if strings.TrimSpace(lemma) == "" {
		return WordSense{}, errors.New("lemma is required")
	}
	return fallbackEnglishSense(lemma), nil
}

func (d *OfflineDefiner) ChineseSupplement(ctx context.Context, lemma string, english WordSense) (WordSense, error) {
	if strings.TrimSpace(lemma) == "" {
		return WordSense{}, errors.New("lemma is required")
	}
	return fallbackChineseSense(lemma), nil
}

func (d *OfflineDefiner) Model() string {
	return "offline"
}

// OfflineSynthesizer produces silent WAV audio.
type OfflineSynthesizer struct{}

func NewOfflineSynthesizer() *OfflineSynthesizer {
	return &OfflineSynthesizer{}
}

func (s *OfflineSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, "", errors.New("text is required for speech synthesis")
	}
	return SilentWAV(800, 16000), ".wav", nil
}
