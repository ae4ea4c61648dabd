// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document opens PDF files and exposes per-page text and raster
// images. Pages are read through MuPDF (go-fitz); metadata inspection uses
// pdfcpu.
package document

import (
	"fmt"
	"os"

	fitz "github.com/gen2brain/go-fitz"
)

// RenderDPI is the resolution used to rasterize pages without a text layer.
// Recognition quality on borderline scans depends on it, so it is fixed.
const RenderDPI = 300

// NotFoundError reports that the input path does not name a readable file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return "File not found: " + e.Path
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Document is an opened PDF. Page indexes are zero-based.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the embedded text layer of a page, untrimmed.
	// Pages without a text layer return an empty string.
	PageText(index int) (string, error)

	// RenderPage rasterizes a page at dpi and returns it PNG-encoded.
	RenderPage(index int, dpi float64) ([]byte, error)

	// Close releases the document. Calls after the first are no-ops.
	Close() error
}

// Opener opens the PDF at path. Open is the production implementation;
// tests substitute fakes.
type Opener func(path string) (Document, error)

// Open checks that path is a readable regular file and opens it with MuPDF.
func Open(path string) (Document, error) {
	if err := checkReadable(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &mupdfDocument{doc: doc}, nil
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &NotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &NotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	f, err := os.Open(path)
	if err != nil {
		return &NotFoundError{Path: path, Err: err}
	}
	return f.Close()
}

// mupdfDocument implements Document on top of a go-fitz document.
type mupdfDocument struct {
	doc    *fitz.Document
	closed bool
}

func (d *mupdfDocument) PageCount() int { return d.doc.NumPage() }

func (d *mupdfDocument) PageText(index int) (string, error) {
	text, err := d.doc.Text(index)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", index+1, err)
	}
	return text, nil
}

func (d *mupdfDocument) RenderPage(index int, dpi float64) ([]byte, error) {
	img, err := d.doc.ImagePNG(index, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d at %.0f dpi: %w", index+1, dpi, err)
	}
	return img, nil
}

func (d *mupdfDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.doc.Close()
}
