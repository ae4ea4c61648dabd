// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a PDF into a page-labeled transcript. Pages with a
// text layer are copied directly; pages without one are rasterized and sent
// to a recognition backend.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/pdf-extract/internal/document"
	"github.com/pdiddy/pdf-extract/internal/logging"
	"github.com/pdiddy/pdf-extract/internal/recognize"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// OutputFile is the transcript file written in the working directory.
const OutputFile = "extracted_output.txt"

// Extractor runs the per-page pipeline. Pages are processed one at a time
// in ascending order.
type Extractor struct {
	open       document.Opener
	recognizer recognize.Recognizer
	out        io.Writer
	logger     *log.Logger
}

// New returns an Extractor. Progress lines go to out; diagnostics go to
// logger (nil discards them).
func New(open document.Opener, r recognize.Recognizer, out io.Writer, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{open: open, recognizer: r, out: out, logger: logger}
}

// Run checks the recognition backend, opens path and builds the transcript.
// The document is closed before Run returns, whatever the outcome.
func (e *Extractor) Run(ctx context.Context, path string) (*types.Transcript, error) {
	if err := e.recognizer.Check(ctx); err != nil {
		return nil, err
	}

	doc, err := e.open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			e.logger.Warn().Err(cerr).Str("path", path).Msg("closing document")
		}
	}()

	fmt.Fprintf(e.out, "Processing: %s\n", path)

	pages := doc.PageCount()
	e.logger.Debug().Str("path", path).Int("pages", pages).Str("backend", e.recognizer.Name()).Msg("document opened")

	transcript := &types.Transcript{Source: path}
	for i := range pages {
		unit, err := e.page(ctx, doc, i)
		if err != nil {
			return nil, err
		}
		if err := transcript.Append(unit); err != nil {
			return nil, err
		}
	}

	e.logger.Info().
		Int("pages", pages).
		Int("direct", transcript.Count(types.SourceDirect)).
		Int("recognized", transcript.Count(types.SourceRecognized)).
		Msg("extraction finished")
	return transcript, nil
}

// page processes the page at 0-based index i.
func (e *Extractor) page(ctx context.Context, doc document.Document, i int) (types.ExtractedUnit, error) {
	n := i + 1

	text, err := doc.PageText(i)
	if err != nil {
		return types.ExtractedUnit{}, fmt.Errorf("extracting text from page %d: %w", n, err)
	}
	if text = strings.TrimSpace(text); text != "" {
		return types.ExtractedUnit{Page: n, Kind: types.SourceDirect, Label: types.DirectTextLabel, Body: text}, nil
	}

	img, err := doc.RenderPage(i, document.RenderDPI)
	if err != nil {
		return types.ExtractedUnit{}, fmt.Errorf("rendering page %d: %w", n, err)
	}

	fmt.Fprintf(e.out, "Running recognition on page %d...\n", n)

	recognized, err := e.recognizer.Recognize(ctx, img)
	if err != nil {
		e.logger.Warn().Err(err).Int("page", n).Str("backend", e.recognizer.Name()).Msg("recognition failed")
		recognized = ""
	}

	body := strings.TrimSpace(recognized)
	if body == "" {
		body = types.NoTextDetected
	}
	return types.ExtractedUnit{Page: n, Kind: types.SourceRecognized, Label: e.recognizer.Label(), Body: body}, nil
}

// WriteTranscript writes t to OutputFile in dir, then prints the completion
// lines and the transcript to out. It returns the path written.
func WriteTranscript(dir string, t *types.Transcript, out io.Writer) (string, error) {
	result := t.String()
	path := filepath.Join(dir, OutputFile)
	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", OutputFile, err)
	}

	fmt.Fprintln(out, "Extraction complete")
	fmt.Fprintf(out, "Output saved to: %s\n\n", OutputFile)
	fmt.Fprintln(out, result)
	return path, nil
}
