package provider

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"resty.dev/v3"
)

// AzureSpeechClient implements Synthesizer against the Azure Cognitive
// Services TTS REST endpoint. Failures degrade to silent fallback audio.
type AzureSpeechClient struct {
	httpClient   *resty.Client
	defaultVoice string
}

func NewAzureSpeechClient(apiKey, region, defaultVoice string) *AzureSpeechClient {
	client := resty.New()
	client.SetBaseURL(fmt.Sprintf("https://%s.tts.speech.microsoft.com", region))
	client.SetHeader("Ocp-Apim-Subscription-Key", apiKey)
	client.SetHeader("Content-Type", "application/ssml+xml")
	client.SetHeader("X-Microsoft-OutputFormat", "audio-24khz-48kbitrate-mono-mp3")
	client.SetHeader("User-Agent", "lexisnap-server")

	return &AzureSpeechClient{
		httpClient:   client,
		defaultVoice: defaultVoice,
	}
}

func (c *AzureSpeechClient) Close() error {
	return c.httpClient.Close()
}

func (c *AzureSpeechClient) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, "", errors.New("text is required for speech synthesis")
	}
	if voice == "" {
		voice = c.defaultVoice
	}

	ssml := fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="en-US"><voice name="%s"><prosody rate="1.0" pitch="+0%%" volume="medium">%s</prosody></voice></speak>`,
		voice, html.EscapeString(trimmed),
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(ssml).
		Post("/cognitiveservices/v1")
	if err != nil {
		slog.Warn("Azure speech synthesis failed, using silent fallback", "error", err)
		return SilentWAV(800, 16000), ".wav", nil
	}
	if resp.IsError() {
		slog.Warn("Azure speech synthesis returned an error status, using silent fallback",
			"status", resp.StatusCode(),
			"body", resp.String(),
		)
		return SilentWAV(800, 16000), ".wav", nil
	}

	audio := resp.Bytes()
	if len(audio) == 0 {
		slog.Warn("Azure speech synthesis returned an empty body, using silent fallback")
		return SilentWAV(800, 16000), ".wav", nil
	}
	return audio, ".mp3", nil
}
