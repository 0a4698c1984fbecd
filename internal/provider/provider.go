// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider resolves a PDF-reading library at startup. Providers are
// ranked; the first one that is available wins, and resolution fails fast
// when none are.
//
// See docs/ARCHITECTURE § Providers.
package provider

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider names, in default rank order.
const (
	NameLedongthuc = "ledongthuc"
	NameDslipak    = "dslipak"
	NameRSC        = "rsc"
	NamePdftotext  = "pdftotext"
)

// ErrNoProvider is returned by Resolve when no candidate provider is available.
var ErrNoProvider = errors.New("no PDF library found")

// Provider opens PDF documents for text extraction.
type Provider interface {
	// Name returns the provider name used in configuration.
	Name() string

	// Available reports whether the provider can be used in this environment.
	Available() bool

	// Open opens the PDF at path. The caller must Close the returned Document.
	Open(path string) (Document, error)
}

// Document is an opened PDF whose pages can be read one at a time.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the extracted text of page n (1-based).
	PageText(n int) (string, error)

	Close() error
}

type factory struct {
	name string
	new  func() Provider
}

// factories lists every provider in default rank order.
var factories = []factory{
	{NameLedongthuc, func() Provider { return ledongthucProvider{} }},
	{NameDslipak, func() Provider { return dslipakProvider{} }},
	{NameRSC, func() Provider { return rscProvider{} }},
	{NamePdftotext, func() Provider { return newPdftotextProvider(defaultExec) }},
}

// DefaultOrder returns the provider names in default rank order.
func DefaultOrder() []string {
	names := make([]string, len(factories))
	for i, f := range factories {
		names[i] = f.name
	}
	return names
}

// All returns one instance of every provider in default rank order.
func All() []Provider {
	out := make([]Provider, len(factories))
	for i, f := range factories {
		out[i] = f.new()
	}
	return out
}

// Resolve returns the first available provider among names, tried in order.
// An empty list means DefaultOrder. Unknown names are an error; when no
// candidate is available the error wraps ErrNoProvider.
func Resolve(names []string) (Provider, error) {
	return resolve(names, factories)
}

func resolve(names []string, registry []factory) (Provider, error) {
	if len(names) == 0 {
		for _, f := range registry {
			names = append(names, f.name)
		}
	}

	byName := make(map[string]func() Provider, len(registry))
	for _, f := range registry {
		byName[f.name] = f.new
	}

	candidates := make([]Provider, 0, len(names))
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		newFn, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (known: %s)", name, strings.Join(registryNames(registry), ", "))
		}
		candidates = append(candidates, newFn())
	}

	for _, p := range candidates {
		if p.Available() {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %s", ErrNoProvider, strings.Join(names, ", "))
}

func registryNames(registry []factory) []string {
	names := make([]string, len(registry))
	for i, f := range registry {
		names[i] = f.name
	}
	return names
}

// openFile opens path and reports its size, the shape every pure-Go
// reader constructor wants.
func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, fi.Size(), nil
}

// recoverErr converts a panic raised inside a parsing library into an error.
func recoverErr(err *error, stage string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: malformed PDF: %v", stage, r)
	}
}
