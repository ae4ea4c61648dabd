// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/secrets"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// emptyEnv hides the real environment from credential lookups.
func emptyEnv(string) string { return "" }

func TestNew(t *testing.T) {
	tests := []struct {
		backend   types.RecognitionBackend
		wantName  string
		wantLabel string
	}{
		{backend: "", wantName: "tesseract", wantLabel: "OCR Scanned Page"},
		{backend: types.BackendTesseract, wantName: "tesseract", wantLabel: "OCR Scanned Page"},
		{backend: types.BackendTesseractCLI, wantName: "tesseract-cli", wantLabel: "OCR Scanned Page"},
		{backend: types.BackendOpenAI, wantName: "openai", wantLabel: "OpenAI OCR"},
		{backend: types.BackendAnthropic, wantName: "anthropic", wantLabel: "Claude OCR"},
		{backend: types.BackendGemini, wantName: "gemini", wantLabel: "Gemini OCR"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := types.DefaultConfig().Recognition
			cfg.Backend = tt.backend
			r, err := New(cfg, Options{Secrets: secrets.Resolver{Getenv: emptyEnv}})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, r.Name())
			assert.Equal(t, tt.wantLabel, r.Label())
		})
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := types.DefaultConfig().Recognition
	cfg.Backend = "abbyy"
	_, err := New(cfg, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abbyy")
}

func TestCheckMissingKey(t *testing.T) {
	tests := []struct {
		backend types.RecognitionBackend
		envVar  string
	}{
		{backend: types.BackendOpenAI, envVar: "OPENAI_API_KEY"},
		{backend: types.BackendAnthropic, envVar: "ANTHROPIC_API_KEY"},
		{backend: types.BackendGemini, envVar: "GEMINI_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := types.DefaultConfig().Recognition
			cfg.Backend = tt.backend
			r, err := New(cfg, Options{Secrets: secrets.Resolver{Getenv: emptyEnv}})
			require.NoError(t, err)

			err = r.Check(context.Background())
			require.Error(t, err)

			var ue *UnavailableError
			require.True(t, errors.As(err, &ue), "want UnavailableError, got %T", err)
			assert.Equal(t, string(tt.backend), ue.Backend)
			assert.Contains(t, ue.Reason, tt.envVar)
			assert.Contains(t, ue.Remedy, "export "+tt.envVar)
		})
	}
}

func TestMissingKeyRemedy(t *testing.T) {
	tests := []struct {
		name        string
		err         *UnavailableError
		wantReason  string
		wantInStore string
		wantAlt     string
	}{
		{
			name:        "single variable",
			err:         missingKey("openai", openAIKeyFile, openAIKeyEnv),
			wantReason:  "OPENAI_API_KEY environment variable not set.",
			wantInStore: ".secrets/openai-api-key",
		},
		{
			name:        "gemini accepts both variables",
			err:         missingKey("gemini", geminiKeyFile, geminiKeyEnv, googleKeyEnv),
			wantReason:  "GEMINI_API_KEY or GOOGLE_API_KEY environment variable not set.",
			wantInStore: ".secrets/gemini-api-key",
			wantAlt:     "GOOGLE_API_KEY is accepted as well.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantReason, tt.err.Reason)
			assert.Contains(t, tt.err.Remedy, tt.wantInStore)
			if tt.wantAlt != "" {
				assert.Contains(t, tt.err.Remedy, tt.wantAlt)
			}
		})
	}
}

func TestGeminiCheckMentionsGoogleKey(t *testing.T) {
	cfg := types.DefaultConfig().Recognition
	cfg.Backend = types.BackendGemini
	r, err := New(cfg, Options{Secrets: secrets.Resolver{Getenv: emptyEnv}})
	require.NoError(t, err)

	var ue *UnavailableError
	require.ErrorAs(t, r.Check(context.Background()), &ue)
	assert.Contains(t, ue.Remedy, "GOOGLE_API_KEY")
	assert.Contains(t, ue.Remedy, "export GEMINI_API_KEY")
}

func TestCheckKeyFromSecrets(t *testing.T) {
	tests := []struct {
		backend types.RecognitionBackend
		env     map[string]string
		files   map[string]string
	}{
		{backend: types.BackendOpenAI, env: map[string]string{"OPENAI_API_KEY": "sk-env"}},
		{backend: types.BackendAnthropic, files: map[string]string{"anthropic-api-key": "sk-ant-file"}},
		{backend: types.BackendOpenAI, files: map[string]string{"openai-api-key": "sk-file"}},
		{backend: types.BackendGemini, env: map[string]string{"GOOGLE_API_KEY": "gk-env"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cfg := types.DefaultConfig().Recognition
			cfg.Backend = tt.backend
			resolver := secrets.Resolver{
				Getenv: func(k string) string { return tt.env[k] },
				Files:  tt.files,
			}
			r, err := New(cfg, Options{Secrets: resolver})
			require.NoError(t, err)
			assert.NoError(t, r.Check(context.Background()))
		})
	}
}

func TestUnavailableErrorMessage(t *testing.T) {
	err := &UnavailableError{Backend: "tesseract", Reason: "Tesseract OCR not found."}
	assert.Equal(t, "tesseract recognition unavailable: Tesseract OCR not found.", err.Error())

	cause := errors.New("exec: not found")
	wrapped := &UnavailableError{Backend: "tesseract-cli", Reason: "Tesseract OCR not found.", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "exec: not found")
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"eng"}, splitLanguages(""))
	assert.Equal(t, []string{"eng", "deu"}, splitLanguages("eng+deu"))
	assert.Equal(t, []string{"fra"}, splitLanguages(" fra + "))
}
