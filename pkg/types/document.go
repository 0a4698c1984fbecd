// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pdf-extract: the extracted
// Document and its Pages, per-file extraction Results, catalog Records, and
// configuration.
//
// See docs/ARCHITECTURE § Data Structures.
package types

import "time"

// ExtractionStatus indicates the outcome of extracting one PDF.
type ExtractionStatus string

const (
	ExtractionDone    ExtractionStatus = "extracted"
	ExtractionFailed  ExtractionStatus = "failed"
	ExtractionSkipped ExtractionStatus = "skipped"
)

// Page is one page of an extracted document.
type Page struct {
	// Number is the 1-based position of the page in the document.
	Number int `json:"number" yaml:"number"`

	// Text is the page's extracted text. It may be empty.
	Text string `json:"text" yaml:"text"`
}

// Document holds the text of a PDF, page by page, in document order.
type Document struct {
	// Source is the path the document was read from.
	Source string `json:"source" yaml:"source"`

	// Provider names the PDF library that read the document.
	Provider string `json:"provider" yaml:"provider"`

	Pages []Page `json:"pages" yaml:"pages"`
}

// NumPage returns the number of pages in the document.
func (d Document) NumPage() int {
	return len(d.Pages)
}

// Result describes the outcome of extracting a single PDF to a text file.
type Result struct {
	Source   string           `json:"source" yaml:"source"`
	Output   string           `json:"output" yaml:"output"`
	Provider string           `json:"provider,omitempty" yaml:"provider,omitempty"`
	Pages    int              `json:"pages" yaml:"pages"`
	Bytes    int              `json:"bytes" yaml:"bytes"`
	Status   ExtractionStatus `json:"status" yaml:"status"`

	// Error holds the failure description when Status is ExtractionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Record is one row of the extraction catalog.
type Record struct {
	// ID is a UUID assigned when the record is stored.
	ID string `json:"id" yaml:"id"`

	Source string `json:"source" yaml:"source"`

	// Checksum is the hex SHA-256 of the source file at extraction time.
	Checksum string `json:"checksum" yaml:"checksum"`

	Provider    string           `json:"provider" yaml:"provider"`
	Pages       int              `json:"pages" yaml:"pages"`
	Output      string           `json:"output" yaml:"output"`
	Status      ExtractionStatus `json:"status" yaml:"status"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	ExtractedAt time.Time        `json:"extracted_at" yaml:"extracted_at"`
}
