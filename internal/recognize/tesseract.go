//go:build tesseract

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/otiai10/gosseract/v2"
	"github.com/phuslu/log"
)

// Tesseract recognizes pages with the Tesseract library through gosseract.
// A fresh client is used for every page.
type Tesseract struct {
	languages []string
	psm       gosseract.PageSegMode
	dpi       int
	logger    *log.Logger
}

// NewTesseract returns a gosseract-backed recognizer. language may name
// several languages joined with "+".
func NewTesseract(language string, psm, dpi int, logger *log.Logger) *Tesseract {
	return &Tesseract{
		languages: splitLanguages(language),
		psm:       gosseract.PageSegMode(psm),
		dpi:       dpi,
		logger:    logger,
	}
}

// TesseractVersion returns the version of the linked Tesseract library.
func TesseractVersion() string { return gosseract.Version() }

func (t *Tesseract) Name() string  { return "tesseract" }
func (t *Tesseract) Label() string { return OCRLabel }

// Check verifies the engine loads and has trained data for every
// configured language.
func (t *Tesseract) Check(_ context.Context) error {
	version := gosseract.Version()
	if version == "" {
		return &UnavailableError{Backend: t.Name(), Reason: "Tesseract OCR not found.", Remedy: tesseractRemedy}
	}

	installed, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return &UnavailableError{Backend: t.Name(), Reason: "cannot list Tesseract languages", Remedy: tesseractRemedy, Err: err}
	}
	for _, lang := range t.languages {
		if !slices.Contains(installed, lang) {
			return &UnavailableError{
				Backend: t.Name(),
				Reason:  fmt.Sprintf("language data %q is not installed", lang),
				Remedy:  fmt.Sprintf("Install the %s.traineddata file (e.g. apt-get install tesseract-ocr-%s).", lang, lang),
			}
		}
	}

	t.logger.Debug().Str("version", version).Strs("languages", t.languages).Msg("tesseract ready")
	return nil
}

func (t *Tesseract) Recognize(_ context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("setting languages: %w", err)
	}
	if err := client.SetPageSegMode(t.psm); err != nil {
		return "", fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if t.dpi > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(t.dpi)); err != nil {
			return "", fmt.Errorf("setting dpi: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
