// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recognize turns rasterized PDF pages into text. Backends are a
// local Tesseract engine (linked through gosseract or run as a binary) or a
// remote vision model (OpenAI, Anthropic, Gemini); callers only see the
// Recognizer interface.
package recognize

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/internal/logging"
	"github.com/pdiddy/pdf-extract/internal/secrets"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// OCRLabel is the transcript label for local Tesseract backends.
const OCRLabel = "OCR Scanned Page"

// Prompts sent to remote vision backends.
const (
	systemPrompt = "You are an OCR engine. Extract text exactly as written. Do not explain anything."
	userPrompt   = "Extract all text from this image exactly. Keep line breaks."
)

// Recognizer converts one PNG-encoded page image into text.
type Recognizer interface {
	// Name returns the backend identifier, e.g. "tesseract".
	Name() string

	// Label returns the text shown in transcript headers for pages this
	// backend recognized.
	Label() string

	// Check verifies the backend is configured and reachable. It returns an
	// *UnavailableError when it is not.
	Check(ctx context.Context) error

	// Recognize returns the text in image with line breaks preserved and
	// nothing added.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// UnavailableError reports a backend that cannot be used for this run.
type UnavailableError struct {
	Backend string
	Reason  string
	// Remedy tells the user how to fix the problem.
	Remedy string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s recognition unavailable: %s: %v", e.Backend, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s recognition unavailable: %s", e.Backend, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// missingKey builds the error for a remote backend without a credential.
// envVars lists every accepted variable, preferred first; fileKey names the
// file under .secrets/ that is also consulted.
func missingKey(backend, fileKey string, envVars ...string) *UnavailableError {
	var remedy strings.Builder
	fmt.Fprintf(&remedy, "Set it like this:\n  export %s=\"your_api_key_here\"", envVars[0])
	for _, alt := range envVars[1:] {
		fmt.Fprintf(&remedy, "\n%s is accepted as well.", alt)
	}
	fmt.Fprintf(&remedy, "\nThe key can also be stored in .secrets/%s.", fileKey)
	return &UnavailableError{
		Backend: backend,
		Reason:  strings.Join(envVars, " or ") + " environment variable not set.",
		Remedy:  remedy.String(),
	}
}

// Options carries the collaborators shared by all backends.
type Options struct {
	// Secrets resolves API keys for remote backends.
	Secrets secrets.Resolver

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger

	// HTTPClient is used by remote backends. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// New builds the recognizer selected by cfg.Backend. Credentials are
// resolved here but only validated by Check.
func New(cfg types.RecognitionConfig, opts Options) (Recognizer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	switch cfg.Backend {
	case types.BackendTesseract, "":
		return NewTesseract(cfg.Language, cfg.PageSegMode, document.RenderDPI, logger), nil
	case types.BackendTesseractCLI:
		return NewTesseractCLI(cfg.TesseractPath, cfg.Language, cfg.PageSegMode, document.RenderDPI, logger), nil
	case types.BackendOpenAI:
		key, _ := opts.Secrets.Lookup(cfg.APIKey, openAIKeyFile, openAIKeyEnv)
		return NewOpenAI(OpenAIConfig{
			APIKey:     key,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			MaxRetries: cfg.MaxRetries,
		}, httpClient, logger), nil
	case types.BackendAnthropic:
		key, _ := opts.Secrets.Lookup(cfg.APIKey, anthropicKeyFile, anthropicKeyEnv)
		return NewAnthropic(AnthropicConfig{
			APIKey:     key,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			MaxRetries: cfg.MaxRetries,
		}, httpClient, logger), nil
	case types.BackendGemini:
		key, _ := opts.Secrets.Lookup(cfg.APIKey, geminiKeyFile, geminiKeyEnv, googleKeyEnv)
		return NewGemini(GeminiConfig{
			APIKey:  key,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		}, httpClient, logger), nil
	default:
		return nil, fmt.Errorf("unknown recognition backend %q (want one of %v)", cfg.Backend, types.Backends)
	}
}
