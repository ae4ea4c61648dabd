//go:build !tesseract

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"

	"github.com/phuslu/log"
)

// Tesseract is the stand-in used when the binary is built without the
// tesseract tag. Check and Recognize always fail with an UnavailableError.
//
// To link libtesseract, rebuild with:
//
//	go build -tags tesseract ./cmd/pdf-extract
//
// This requires the Tesseract and Leptonica development headers (brew install
// tesseract, or apt-get install libtesseract-dev libleptonica-dev).
type Tesseract struct {
	languages []string
	logger    *log.Logger
}

// NewTesseract returns the stub recognizer. The arguments match the real
// implementation.
func NewTesseract(language string, _, _ int, logger *log.Logger) *Tesseract {
	return &Tesseract{languages: splitLanguages(language), logger: logger}
}

// TesseractVersion returns "" because no Tesseract library is linked.
func TesseractVersion() string { return "" }

func (t *Tesseract) Name() string  { return "tesseract" }
func (t *Tesseract) Label() string { return OCRLabel }

func (t *Tesseract) Check(_ context.Context) error {
	return t.unavailable()
}

func (t *Tesseract) Recognize(_ context.Context, _ []byte) (string, error) {
	return "", t.unavailable()
}

func (t *Tesseract) unavailable() error {
	return &UnavailableError{
		Backend: t.Name(),
		Reason:  "built without libtesseract",
		Remedy:  "Rebuild with -tags tesseract, or use the tesseract binary instead:\n  pdf-extract --backend tesseract-cli <file.pdf>",
	}
}
