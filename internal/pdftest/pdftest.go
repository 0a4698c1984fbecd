// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Page describes one page of a test PDF.
type Page struct {
	// Text is shown in 24pt Helvetica; empty produces a page with no text.
	Text string

	// Differences, when set, gives the page its own /F1 font whose encoding
	// applies this /Differences array (e.g. "97 /X") on top of WinAnsi.
	Differences string
}

// Build returns a PDF with one page per entry in pages. Each page shows its
// text in 24pt Helvetica; an empty string produces a page with no text.
func Build(pages ...string) []byte {
	ps := make([]Page, len(pages))
	for i, text := range pages {
		ps[i] = Page{Text: text}
	}
	return BuildPages(ps...)
}

// BuildPages returns a PDF with the given pages. Object layout: 1 catalog,
// 2 page tree, 3 shared font, then per page an optional font, the page,
// and its content stream.
func BuildPages(pages ...Page) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in once the kids are numbered
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	add := func(obj string) int {
		objects = append(objects, obj)
		return len(objects)
	}

	kids := make([]string, 0, len(pages))
	for _, page := range pages {
		font := 3
		if page.Differences != "" {
			font = add(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica "+
				"/Encoding << /Type /Encoding /BaseEncoding /WinAnsiEncoding /Differences [%s] >> >>",
				page.Differences))
		}
		content := ""
		if page.Text != "" {
			content = fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", escape(page.Text))
		}
		pageNum := len(objects) + 1
		add(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", font, pageNum+1))
		add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Write stores Build(pages...) as name under dir and returns its path.
func Write(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	return writeFile(t, dir, name, Build(pages...))
}

// WritePages stores BuildPages(pages...) as name under dir and returns its
// path.
func WritePages(t testing.TB, dir, name string, pages ...Page) string {
	t.Helper()
	return writeFile(t, dir, name, BuildPages(pages...))
}

func writeFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
