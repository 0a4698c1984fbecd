// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns PDF documents into plain text files. Page text comes
// from a provider.Provider resolved at startup; pages are written in
// document order, each followed by a newline.
//
// See docs/ARCHITECTURE § Extraction.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/provider"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// pageSeparator follows every page in the output text.
const pageSeparator = "\n"

// Options adjusts extraction behavior.
type Options struct {
	// ErrorAsContent writes a failed extraction's error text as the output
	// file content and reports no error. Off by default.
	ErrorAsContent bool

	// Preflight, when set, runs before a document is opened. An error
	// counts as an extraction failure.
	Preflight func(pdfPath string) error
}

// Extractor reads documents through a single provider.
type Extractor struct {
	provider provider.Provider
	logger   *zap.Logger
	opts     Options
}

// New returns an Extractor that reads PDFs with p. A nil logger disables
// logging.
func New(p provider.Provider, logger *zap.Logger, opts Options) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		provider: p,
		logger:   logger.With(zap.String("provider", p.Name())),
		opts:     opts,
	}
}

// Provider returns the name of the provider in use.
func (e *Extractor) Provider() string {
	return e.provider.Name()
}

// Extract opens pdfPath and reads the text of every page in order. No
// validation of the path happens beyond what the provider does itself.
func (e *Extractor) Extract(pdfPath string) (doc types.Document, err error) {
	if e.opts.Preflight != nil {
		if err := e.opts.Preflight(pdfPath); err != nil {
			return types.Document{}, err
		}
	}

	d, err := e.provider.Open(pdfPath)
	if err != nil {
		return types.Document{}, err
	}
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", pdfPath, cerr)
		}
	}()

	n := d.NumPage()
	e.logger.Debug("document opened", zap.String("file", pdfPath), zap.Int("pages", n))

	doc = types.Document{
		Source:   pdfPath,
		Provider: e.provider.Name(),
		Pages:    make([]types.Page, 0, n),
	}
	for i := 1; i <= n; i++ {
		text, err := d.PageText(i)
		if err != nil {
			return types.Document{}, fmt.Errorf("extracting page %d of %s: %w", i, pdfPath, err)
		}
		doc.Pages = append(doc.Pages, types.Page{Number: i, Text: text})
		e.logger.Debug("page extracted",
			zap.String("file", pdfPath),
			zap.Int("page", i),
			zap.Int("chars", len(text)))
	}
	return doc, nil
}

// FormatText joins page texts in order, each followed by a newline. A
// document without pages formats to the empty string.
func FormatText(doc types.Document) string {
	var b strings.Builder
	for _, p := range doc.Pages {
		b.WriteString(p.Text)
		b.WriteString(pageSeparator)
	}
	return b.String()
}

// ExtractText returns the full text of pdfPath.
func (e *Extractor) ExtractText(pdfPath string) (string, error) {
	doc, err := e.Extract(pdfPath)
	if err != nil {
		return "", err
	}
	return FormatText(doc), nil
}

// ExtractFile extracts pdfPath and writes the text to outPath, replacing
// any existing file. On failure the output file is left untouched and the
// error is returned, unless ErrorAsContent is set: then the error text
// becomes the file content and the returned error is nil. The Result
// reports the outcome either way.
func (e *Extractor) ExtractFile(pdfPath, outPath string) (types.Result, error) {
	res := types.Result{
		Source:   pdfPath,
		Output:   outPath,
		Provider: e.provider.Name(),
	}

	doc, err := e.Extract(pdfPath)
	if err != nil {
		res.Status = types.ExtractionFailed
		res.Error = err.Error()
		if !e.opts.ErrorAsContent {
			return res, err
		}

		e.logger.Warn("extraction failed, writing error text as content",
			zap.String("file", pdfPath), zap.Error(err))
		if werr := WriteText(outPath, res.Error); werr != nil {
			return res, errors.Join(err, werr)
		}
		res.Bytes = len(res.Error)
		return res, nil
	}

	text := FormatText(doc)
	if err := WriteText(outPath, text); err != nil {
		res.Status = types.ExtractionFailed
		res.Error = err.Error()
		return res, err
	}

	res.Status = types.ExtractionDone
	res.Pages = doc.NumPage()
	res.Bytes = len(text)
	e.logger.Info("document extracted",
		zap.String("file", pdfPath),
		zap.String("output", outPath),
		zap.Int("pages", res.Pages),
		zap.Int("bytes", res.Bytes))
	return res, nil
}
