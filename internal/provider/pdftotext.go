// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

var defaultExec = &osExecutor{}

// pdftotextProvider shells out to poppler's pdftotext. It is the last
// resort and is available only when the binary is on PATH.
type pdftotextProvider struct {
	exec executor
}

func newPdftotextProvider(exec executor) *pdftotextProvider {
	return &pdftotextProvider{exec: exec}
}

func (p *pdftotextProvider) Name() string { return NamePdftotext }

func (p *pdftotextProvider) Available() bool {
	_, err := p.exec.LookPath(binPdftotext)
	return err == nil
}

// Open runs pdftotext once over the whole file. Pages arrive separated by
// form feeds.
func (p *pdftotextProvider) Open(path string) (Document, error) {
	out, err := p.exec.Output(binPdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return &pdftotextDocument{pages: splitPages(string(out))}, nil
}

// splitPages splits pdftotext output on form feeds. Every page, including
// the last, is terminated by one, so the trailing empty element is dropped.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages
}

type pdftotextDocument struct {
	pages []string
}

func (d *pdftotextDocument) NumPage() int { return len(d.pages) }

func (d *pdftotextDocument) PageText(n int) (string, error) {
	if n < 1 || n > len(d.pages) {
		return "", fmt.Errorf("page %d out of range (document has %d)", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

func (d *pdftotextDocument) Close() error { return nil }
