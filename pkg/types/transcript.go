// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SourceKind records which path produced a page's text.
type SourceKind string

const (
	// SourceDirect means the page's embedded text layer was used.
	SourceDirect SourceKind = "direct"
	// SourceRecognized means the page was rasterized and run through a
	// recognition backend.
	SourceRecognized SourceKind = "recognized"
)

const (
	// DirectTextLabel is the block header label for SourceDirect pages.
	DirectTextLabel = "Direct Text"

	// NoTextDetected replaces the body of a recognized page when the backend
	// returned nothing (or failed). It is part of the output format.
	NoTextDetected = "[No text detected]"

	// blockSeparator sits between consecutive page blocks.
	blockSeparator = "\n\n"
)

// ExtractedUnit is the result of processing one page.
type ExtractedUnit struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// Kind is the extraction path that produced Body.
	Kind SourceKind `json:"kind" yaml:"kind"`

	// Label is shown in the block header, e.g. "Direct Text" or "OCR Scanned Page".
	Label string `json:"label" yaml:"label"`

	// Body is the trimmed page text, or NoTextDetected.
	Body string `json:"body" yaml:"body"`
}

// Block renders the unit as "--- Page N (Label) ---\nBody".
func (u ExtractedUnit) Block() string {
	return fmt.Sprintf("--- Page %d (%s) ---\n%s", u.Page, u.Label, u.Body)
}

// Transcript is the ordered list of units for a whole document.
type Transcript struct {
	Source string          `json:"source" yaml:"source"`
	Units  []ExtractedUnit `json:"units" yaml:"units"`
}

// Append adds the unit for the next page. Units must arrive in page order
// starting at 1; anything else is rejected.
func (t *Transcript) Append(u ExtractedUnit) error {
	want := len(t.Units) + 1
	if u.Page != want {
		return fmt.Errorf("transcript: got page %d, want %d", u.Page, want)
	}
	t.Units = append(t.Units, u)
	return nil
}

// Count returns the number of units of the given kind.
func (t Transcript) Count(kind SourceKind) int {
	n := 0
	for _, u := range t.Units {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

// String joins every block with a blank line, in page order.
func (t Transcript) String() string {
	blocks := make([]string, len(t.Units))
	for i, u := range t.Units {
		blocks[i] = u.Block()
	}
	return strings.Join(blocks, blockSeparator)
}
