package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// GeminiClient implements Extractor and Definer against the Gemini REST API.
// Any provider-side failure degrades to the offline fallback output after
// the retry budget is exhausted; only malformed local input is an error.
type GeminiClient struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewGeminiClient(apiKey, model string, retryAttempts uint) *GeminiClient {
	client := resty.New()
	client.SetBaseURL("https://generativelanguage.googleapis.com/v1beta")
	client.SetHeader("x-goog-api-key", apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &GeminiClient{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (c *GeminiClient) Close() error {
	return c.httpClient.Close()
}

func (c *GeminiClient) Model() string {
	return c.model
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"topP"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// isRetryableError classifies transient failures worth another attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// 5xx server errors and 429 rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

func (c *GeminiClient) generate(ctx context.Context, parts []geminiPart) (string, error) {
	request := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature: 0.2,
			TopP:        0.8,
		},
	}

	var text string
	err := retry.Do(
		func() error {
			var response geminiResponse
			resp, err := c.httpClient.R().
				SetContext(ctx).
				SetBody(request).
				SetResult(&response).
				Post(fmt.Sprintf("/models/%s:generateContent", c.model))
			if err != nil {
				return fmt.Errorf("httpClient.Post > %w", err)
			}
			if resp.IsError() {
				return fmt.Errorf("response error %d: %s", resp.StatusCode(), resp.String())
			}
			if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
				return errors.New("empty candidate list in response")
			}
			text = response.Candidates[0].Content.Parts[0].Text
			return nil
		},
		retry.Attempts(c.maxRetryAttempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return "", err
	}
	return text, nil
}

// decodeJSONBlock parses a model response that may be wrapped in a
// ```json fenced block.
func decodeJSONBlock(raw string, out interface{}) error {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		trimmed = strings.ReplaceAll(trimmed, "```json", "")
		trimmed = strings.ReplaceAll(trimmed, "```JSON", "")
		trimmed = strings.ReplaceAll(trimmed, "```", "")
		trimmed = strings.TrimSpace(trimmed)
	}
	return json.Unmarshal([]byte(trimmed), out)
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func (c *GeminiClient) ExtractWords(ctx context.Context, image []byte, mimeType string) ([]OCRCandidate, error) {
	if len(image) == 0 {
		return nil, errors.New("image bytes are required")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := strings.Join([]string{
		"You are an OCR assistant for English vocabulary flashcards.",
		"Extract ALL English words visible in the provided image.",
		`Respond with JSON array: [{"lemma": "<lowercase-word>", "confidence": <0-1 number>}, ...]`,
		"Each word should be a separate object in the array.",
		"Only include actual English words, ignore numbers, symbols, or non-English text.",
		"If you cannot find any words, return an empty array [].",
	}, " ")

	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		slog.Warn("Gemini OCR call failed, using offline fallback", "error", err)
		return fallbackOCRCandidates(), nil
	}

	var raw []OCRCandidate
	if err := decodeJSONBlock(text, &raw); err != nil {
		slog.Warn("Gemini OCR response was not parseable JSON, using offline fallback", "error", err)
		return fallbackOCRCandidates(), nil
	}

	// An empty list from a successful call is a valid "nothing found" answer.
	candidates := make([]OCRCandidate, 0, len(raw))
	for _, item := range raw {
		lemma := strings.ToLower(strings.TrimSpace(item.Lemma))
		if lemma == "" {
			continue
		}
		candidates = append(candidates, OCRCandidate{
			Lemma:      lemma,
			Confidence: clampConfidence(item.Confidence),
		})
	}
	return candidates, nil
}

func (c *GeminiClient) EnglishMetadata(ctx context.Context, lemma string) (WordSense, error) {
	if strings.TrimSpace(lemma) == "" {
		return WordSense{}, errors.New("lemma is required")
	}

	prompt := strings.Join([]string{
		"You act as an English learner dictionary.",
		fmt.Sprintf("Provide a concise definition and a short sentence for the word %q.", lemma),
		`Respond with JSON: { "definition": "...", "example": "..." }.`,
		"Definition should be within 25 words and example within 20 words.",
	}, " ")

	text, err := c.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		slog.Warn("Gemini definition call failed, using offline fallback", "lemma", lemma, "error", err)
		return fallbackEnglishSense(lemma), nil
	}

	var sense WordSense
	if err := decodeJSONBlock(text, &sense); err != nil {
		slog.Warn("Gemini definition response was not parseable JSON, using offline fallback", "lemma", lemma, "error", err)
		return fallbackEnglishSense(lemma), nil
	}
	sense.Definition = strings.TrimSpace(sense.Definition)
	sense.Example = strings.TrimSpace(sense.Example)
	if sense.Definition == "" || sense.Example == "" {
		return fallbackEnglishSense(lemma), nil
	}
	return sense, nil
}

func (c *GeminiClient) ChineseSupplement(ctx context.Context, lemma string, english WordSense) (WordSense, error) {
	if strings.TrimSpace(lemma) == "" {
		return WordSense{}, errors.New("lemma is required")
	}

	prompt := strings.Join([]string{
		"你是一位面向中国学生的英语老师。",
		fmt.Sprintf("英文单词: %s.", lemma),
		fmt.Sprintf("英文释义: %s.", english.Definition),
		fmt.Sprintf("英文例句: %s.", english.Example),
		"请提供中文释义与不超过20字的中文例句。",
		`回答 JSON: { "definition": "...", "example": "..." }。`,
	}, " ")

	text, err := c.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		slog.Warn("Gemini translation call failed, using offline fallback", "lemma", lemma, "error", err)
		return fallbackChineseSense(lemma), nil
	}

	var sense WordSense
	if err := decodeJSONBlock(text, &sense); err != nil {
		slog.Warn("Gemini translation response was not parseable JSON, using offline fallback", "lemma", lemma, "error", err)
		return fallbackChineseSense(lemma), nil
	}
	sense.Definition = strings.TrimSpace(sense.Definition)
	sense.Example = strings.TrimSpace(sense.Example)
	if sense.Definition == "" || sense.Example == "" {
		return fallbackChineseSense(lemma), nil
	}
	return sense, nil
}
