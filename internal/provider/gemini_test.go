package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_decodeJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "bare object", raw: `{"definition": "a fruit", "example": "An apple."}`},
		{name: "fenced block", raw: "```json\n{\"definition\": \"a fruit\", \"example\": \"An apple.\"}\n```"},
		{name: "uppercase fence", raw: "```JSON\n{\"definition\": \"a fruit\", \"example\": \"An apple.\"}\n```"},
		{name: "surrounding whitespace", raw: "  \n{\"definition\": \"a fruit\", \"example\": \"An apple.\"}\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sense WordSense
			require.NoError(t, decodeJSONBlock(tt.raw, &sense))
			assert.Equal(t, "a fruit", sense.Definition)
			assert.Equal(t, "An apple.", sense.Example)
		})
	}

	t.Run("arrays decode too", func(t *testing.T) {
		var candidates []OCRCandidate
		raw := "```json\n[{\"lemma\": \"cat\", \"confidence\": 0.9}]\n```"
		require.NoError(t, decodeJSONBlock(raw, &candidates))
		require.Len(t, candidates, 1)
		assert.Equal(t, "cat", candidates[0].Lemma)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		var sense WordSense
		assert.Error(t, decodeJSONBlock("not json at all", &sense))
	})
}

func Test_clampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, clampConfidence(-0.5))
	assert.Equal(t, 0.42, clampConfidence(0.42))
	assert.Equal(t, 1.0, clampConfidence(1.7))
}

func Test_isRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: errors.New("response error 503: overloaded"), want: true},
		{name: "rate limited", err: errors.New("response error 429: quota"), want: true},
		{name: "truncated json", err: errors.New("unexpected end of JSON input"), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "io timeout", err: errors.New("read: i/o timeout"), want: true},
		{name: "client error", err: errors.New("response error 400: bad request"), want: false},
		{name: "other", err: errors.New("something else"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
