// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/logging"
)

const anthropicReply = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-5",
  "content": [
    {"type": "text", "text": "Total: "},
    {"type": "text", "text": "$100"}
  ],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 4}
}`

func TestAnthropicRecognize(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), "path %s", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(anthropicReply))
	}))
	defer ts.Close()

	a := NewAnthropic(AnthropicConfig{APIKey: "sk-ant-test", BaseURL: ts.URL + "/"}, ts.Client(), logging.Discard())
	require.NoError(t, a.Check(context.Background()))

	text, err := a.Recognize(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "Total: $100", text)

	assert.Equal(t, defaultAnthropicModel, got["model"])
	assert.Equal(t, float64(0), got["temperature"])

	system := got["system"].([]any)
	require.Len(t, system, 1)
	assert.Equal(t, systemPrompt, system[0].(map[string]any)["text"])

	messages := got["messages"].([]any)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	imageBlock := content[0].(map[string]any)
	assert.Equal(t, "image", imageBlock["type"])
	source := imageBlock["source"].(map[string]any)
	assert.Equal(t, "image/png", source["media_type"])
	assert.Equal(t, "cG5n", source["data"])
	assert.Equal(t, userPrompt, content[1].(map[string]any)["text"])
}

func TestAnthropicRecognizeAPIError(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer ts.Close()

	a := NewAnthropic(AnthropicConfig{APIKey: "sk-ant-test", BaseURL: ts.URL + "/"}, ts.Client(), logging.Discard())
	_, err := a.Recognize(context.Background(), []byte("png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling Claude API")
	assert.Equal(t, 1, calls, "SDK retries are disabled by default")
}
