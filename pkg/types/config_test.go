package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackends(t *testing.T) {
	assert.Equal(t, []RecognitionBackend{
		BackendTesseract,
		BackendTesseractCLI,
		BackendOpenAI,
		BackendAnthropic,
		BackendGemini,
	}, Backends)
	assert.Equal(t, BackendTesseract, Backends[0], "default backend is listed first")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendTesseract, cfg.Recognition.Backend)
	assert.Equal(t, "eng", cfg.Recognition.Language)
	assert.Equal(t, 6, cfg.Recognition.PageSegMode)
	assert.Equal(t, 0, cfg.Recognition.MaxRetries)
	assert.Empty(t, cfg.Cache.Path)
	assert.Equal(t, "info", cfg.LogLevel)
}
