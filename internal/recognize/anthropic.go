// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/phuslu/log"
)

const (
	anthropicKeyEnv       = "ANTHROPIC_API_KEY"
	anthropicKeyFile      = "anthropic-api-key"
	defaultAnthropicModel = "claude-sonnet-4-5"
	anthropicMaxTokens    = 4096
)

// AnthropicConfig configures the Claude vision backend.
type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// Anthropic recognizes pages with a Claude model through the Messages API.
type Anthropic struct {
	model  string
	hasKey bool
	client anthropic.Client
	logger *log.Logger
}

// NewAnthropic returns a Claude recognizer. The SDK's own retries are
// limited to cfg.MaxRetries.
func NewAnthropic(cfg AnthropicConfig, httpClient *http.Client, logger *log.Logger) *Anthropic {
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Anthropic{
		model:  cfg.Model,
		hasKey: cfg.APIKey != "",
		client: anthropic.NewClient(opts...),
		logger: logger,
	}
}

func (a *Anthropic) Name() string  { return "anthropic" }
func (a *Anthropic) Label() string { return "Claude OCR" }

// Check only verifies that a key is configured; the API is not called.
func (a *Anthropic) Check(_ context.Context) error {
	if !a.hasKey {
		return missingKey(a.Name(), anthropicKeyFile, anthropicKeyEnv)
	}
	a.logger.Debug().Str("model", a.model).Msg("anthropic backend configured")
	return nil
}

func (a *Anthropic) Recognize(ctx context.Context, image []byte) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64("image/png", base64.StdEncoding.EncodeToString(image)),
				anthropic.NewTextBlock(userPrompt),
			),
		},
		Temperature: anthropic.Float(0),
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
