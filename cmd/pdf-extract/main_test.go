// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/internal/recognize"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing file",
			err:  &document.NotFoundError{Path: "scan.pdf"},
			want: "File not found: scan.pdf\n",
		},
		{
			name: "missing key",
			err: fmt.Errorf("run: %w", &recognize.UnavailableError{
				Backend: "openai",
				Reason:  "OPENAI_API_KEY environment variable not set.",
				Remedy:  "Set it like this:\n  export OPENAI_API_KEY=\"your_api_key_here\"",
			}),
			want: "OPENAI_API_KEY environment variable not set.\nSet it like this:\n  export OPENAI_API_KEY=\"your_api_key_here\"\n",
		},
		{
			name: "backend with cause",
			err: &recognize.UnavailableError{
				Backend: "tesseract-cli",
				Reason:  "Tesseract OCR not found.",
				Remedy:  "Install Tesseract and add it to PATH.",
				Err:     errors.New("exec: \"tesseract\": executable file not found in $PATH"),
			},
			want: "Tesseract OCR not found.\n(exec: \"tesseract\": executable file not found in $PATH)\nInstall Tesseract and add it to PATH.\n",
		},
		{
			name: "other",
			err:  errors.New("rendering page 3: bad xref"),
			want: "Error: rendering page 3: bad xref\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRunExtractWritesNothingOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		path    string
		wantErr any
	}{
		{name: "missing input", key: "sk-test", path: "missing.pdf", wantErr: new(*document.NotFoundError)},
		{name: "backend unconfigured", key: "", path: "missing.pdf", wantErr: new(*recognize.UnavailableError)},
		{name: "file named like a subcommand", key: "sk-test", path: "./info", wantErr: new(*document.NotFoundError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("OPENAI_API_KEY", tt.key)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs([]string{"--backend", "openai", tt.path})
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.wantErr), "got %T: %v", err, err)
			assert.NoFileExists(t, "extracted_output.txt")
			assert.NotContains(t, out.String(), "Processing:")
		})
	}
}

func TestConfigFromDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	assert.Equal(t, types.DefaultConfig(), configFrom(v))
}

func TestConfigFromOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("recognition.backend", " OpenAI ")
	v.Set("recognition.model", "gpt-4o")
	v.Set("recognition.max_retries", 2)
	v.Set("cache.path", "/tmp/ocr.db")

	cfg := configFrom(v)
	assert.Equal(t, types.BackendOpenAI, cfg.Recognition.Backend)
	assert.Equal(t, "gpt-4o", cfg.Recognition.Model)
	assert.Equal(t, 2, cfg.Recognition.MaxRetries)
	assert.Equal(t, "eng", cfg.Recognition.Language)
	assert.Equal(t, "/tmp/ocr.db", cfg.Cache.Path)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PDF_EXTRACT_RECOGNITION_BACKEND", "gemini")
	t.Setenv("PDF_EXTRACT_RECOGNITION_PAGE_SEG_MODE", "3")
	t.Setenv("PDF_EXTRACT_LOG_LEVEL", "debug")

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	cfg := configFrom(v)
	assert.Equal(t, types.BackendGemini, cfg.Recognition.Backend)
	assert.Equal(t, 3, cfg.Recognition.PageSegMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigFromFile(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
recognition:
  backend: tesseract-cli
  tesseract_path: /opt/homebrew/bin/tesseract
  language: eng+deu
cache:
  path: .cache/ocr.db
`)))

	cfg := configFrom(v)
	assert.Equal(t, types.BackendTesseractCLI, cfg.Recognition.Backend)
	assert.Equal(t, "/opt/homebrew/bin/tesseract", cfg.Recognition.TesseractPath)
	assert.Equal(t, "eng+deu", cfg.Recognition.Language)
	assert.Equal(t, 6, cfg.Recognition.PageSegMode)
	assert.Equal(t, ".cache/ocr.db", cfg.Cache.Path)
}

func TestCacheVariant(t *testing.T) {
	a := types.RecognitionConfig{Model: "gpt-4o", Language: "eng", PageSegMode: 6}
	b := a
	b.Language = "deu"
	assert.NotEqual(t, cacheVariant(a), cacheVariant(b))
	assert.Equal(t, cacheVariant(a), cacheVariant(a))
}
