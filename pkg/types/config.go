package types

// RecognitionBackend identifies the engine used for pages without a text layer.
type RecognitionBackend string

const (
	// BackendTesseract links libtesseract through gosseract (build tag tesseract).
	BackendTesseract RecognitionBackend = "tesseract"
	// BackendTesseractCLI runs the tesseract binary.
	BackendTesseractCLI RecognitionBackend = "tesseract-cli"
	// BackendOpenAI sends pages to an OpenAI vision model.
	BackendOpenAI RecognitionBackend = "openai"
	// BackendAnthropic sends pages to a Claude model.
	BackendAnthropic RecognitionBackend = "anthropic"
	// BackendGemini sends pages to a Gemini model.
	BackendGemini RecognitionBackend = "gemini"
)

// Backends lists every supported backend in the order they are documented.
var Backends = []RecognitionBackend{
	BackendTesseract,
	BackendTesseractCLI,
	BackendOpenAI,
	BackendAnthropic,
	BackendGemini,
}

// RecognitionConfig holds settings for the recognition stage.
type RecognitionConfig struct {
	// Backend selects the recognition engine (default tesseract).
	Backend RecognitionBackend `json:"backend" yaml:"backend"`

	// Model is the vision model for remote backends. Empty means the
	// backend's default (gpt-4o-mini, claude-sonnet-4-5, gemini-2.0-flash).
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Language is the Tesseract language string, e.g. "eng" or "eng+deu".
	Language string `json:"language" yaml:"language"`

	// PageSegMode is the Tesseract page segmentation mode (default 6,
	// a single uniform block of text).
	PageSegMode int `json:"page_seg_mode" yaml:"page_seg_mode"`

	// TesseractPath is the tesseract binary used by the tesseract-cli backend.
	TesseractPath string `json:"tesseract_path" yaml:"tesseract_path"`

	// BaseURL overrides the API endpoint of a remote backend.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the credential for a remote backend. When empty it is
	// resolved from the backend's environment variable.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retries on rate limiting (default 0).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the optional recognition cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Config groups everything a run needs. It is built once at startup.
type Config struct {
	Recognition RecognitionConfig `json:"recognition" yaml:"recognition"`
	Cache       CacheConfig       `json:"cache" yaml:"cache"`

	// LogLevel is the diagnostic log level (debug, info, warn, error).
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Recognition: RecognitionConfig{
			Backend:       BackendTesseract,
			Language:      "eng",
			PageSegMode:   6,
			TesseractPath: "tesseract",
		},
		LogLevel: "info",
	}
}
