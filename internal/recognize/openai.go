// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/pdf-extract/internal/httputil"
)

const (
	openAIKeyEnv       = "OPENAI_API_KEY"
	openAIKeyFile      = "openai-api-key"
	defaultOpenAIModel = "gpt-4o-mini"
)

// openAIBaseURL is the Chat Completions API root. Package-level var for test
// substitution.
var openAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig configures the OpenAI vision backend.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// OpenAI recognizes pages with an OpenAI vision model through the Chat
// Completions API.
type OpenAI struct {
	cfg    OpenAIConfig
	client *http.Client
	logger *log.Logger
}

// NewOpenAI returns an OpenAI recognizer. Empty Model and BaseURL fall back
// to gpt-4o-mini and the public API.
func NewOpenAI(cfg OpenAIConfig, client *http.Client, logger *log.Logger) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIBaseURL
	}
	return &OpenAI{cfg: cfg, client: client, logger: logger}
}

func (o *OpenAI) Name() string  { return "openai" }
func (o *OpenAI) Label() string { return "OpenAI OCR" }

// Check only verifies that a key is configured; the API is not called.
func (o *OpenAI) Check(_ context.Context) error {
	if o.cfg.APIKey == "" {
		return missingKey(o.Name(), openAIKeyFile, openAIKeyEnv)
	}
	o.logger.Debug().Str("model", o.cfg.Model).Msg("openai backend configured")
	return nil
}

// chatRequest is the request body for the Chat Completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage content is either a string or a list of chatPart.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatResponse is the subset of the Chat Completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Recognize(ctx context.Context, image []byte) (string, error) {
	body := chatRequest{
		Model:       o.cfg.Model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []chatPart{
				{Type: "text", Text: userPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)}},
			}},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(o.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := httputil.DoWithRetry(ctx, o.client, req, o.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httputil.StatusError("OpenAI API", resp)
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding OpenAI response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return cResp.Choices[0].Message.Content, nil
}
