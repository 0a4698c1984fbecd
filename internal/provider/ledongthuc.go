// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// ledongthucProvider reads PDFs with github.com/ledongthuc/pdf. It is the
// primary provider.
type ledongthucProvider struct{}

func (ledongthucProvider) Name() string    { return NameLedongthuc }
func (ledongthucProvider) Available() bool { return true }

func (ledongthucProvider) Open(path string) (Document, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r, err := func() (r *lpdf.Reader, err error) {
		defer recoverErr(&err, "parsing")
		return lpdf.NewReader(f, size)
	}()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &ledongthucDocument{f: f, r: r}, nil
}

type ledongthucDocument struct {
	f *os.File
	r *lpdf.Reader
}

func (d *ledongthucDocument) NumPage() int { return d.r.NumPage() }

func (d *ledongthucDocument) PageText(n int) (text string, err error) {
	defer recoverErr(&err, "parsing")

	p := d.r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	// Font resource names are page-local: /F1 on one page may be a
	// different font with a different encoding on the next.
	fonts := make(map[string]*lpdf.Font)
	for _, name := range p.Fonts() {
		font := p.Font(name)
		fonts[name] = &font
	}
	text, err = p.GetPlainText(fonts)
	if err != nil {
		return "", err
	}
	// The library starts a line on every text positioning operator, so the
	// first run on a page is preceded by newlines that carry no text.
	return strings.TrimLeft(text, "\n"), nil
}

func (d *ledongthucDocument) Close() error { return d.f.Close() }
