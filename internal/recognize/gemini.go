// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"fmt"
	"net/http"

	"github.com/phuslu/log"
	"google.golang.org/genai"
)

const (
	geminiKeyEnv       = "GEMINI_API_KEY"
	geminiKeyFile      = "gemini-api-key"
	googleKeyEnv       = "GOOGLE_API_KEY"
	defaultGeminiModel = "gemini-2.0-flash"
)

// GeminiConfig configures the Gemini vision backend.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Gemini recognizes pages with a Gemini model through the genai SDK. The
// client is created by Check.
type Gemini struct {
	cfg        GeminiConfig
	httpClient *http.Client
	client     *genai.Client
	logger     *log.Logger
}

// NewGemini returns a Gemini recognizer.
func NewGemini(cfg GeminiConfig, httpClient *http.Client, logger *log.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	return &Gemini{cfg: cfg, httpClient: httpClient, logger: logger}
}

func (g *Gemini) Name() string  { return "gemini" }
func (g *Gemini) Label() string { return "Gemini OCR" }

// Check verifies a key is configured and builds the client.
func (g *Gemini) Check(ctx context.Context) error {
	if g.cfg.APIKey == "" {
		return missingKey(g.Name(), geminiKeyFile, geminiKeyEnv, googleKeyEnv)
	}
	if g.client != nil {
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  g.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.cfg.BaseURL},
	})
	if err != nil {
		return &UnavailableError{
			Backend: g.Name(),
			Reason:  "cannot create Gemini client",
			Remedy:  "Check GEMINI_API_KEY (or GOOGLE_API_KEY) and recognition.base_url.",
			Err:     err,
		}
	}
	g.client = client
	g.logger.Debug().Str("model", g.cfg.Model).Msg("gemini backend configured")
	return nil
}

func (g *Gemini) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := g.Check(ctx); err != nil {
		return "", err
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				genai.NewPartFromBytes(image, "image/png"),
				genai.NewPartFromText(userPrompt),
			},
		},
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0)),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	return resp.Text(), nil
}
