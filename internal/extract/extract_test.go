// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/pdftest"
	"github.com/pdiddy/pdf-extract/internal/provider"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// fakeProvider serves canned documents keyed by path.
type fakeProvider struct {
	docs    map[string]*fakeDocument
	openErr error
}

func (f *fakeProvider) Name() string    { return "fake" }
func (f *fakeProvider) Available() bool { return true }

func (f *fakeProvider) Open(path string) (provider.Document, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	d, ok := f.docs[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	d.closed = false
	return d, nil
}

// fakeDocument returns pages verbatim; pageErrs injects per-page failures.
type fakeDocument struct {
	pages    []string
	pageErrs map[int]error
	closeErr error
	closed   bool
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) {
	if err := d.pageErrs[n]; err != nil {
		return "", err
	}
	return d.pages[n-1], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return d.closeErr
}

func newFake(docs map[string][]string) *fakeProvider {
	f := &fakeProvider{docs: make(map[string]*fakeDocument)}
	for path, pages := range docs {
		f.docs[path] = &fakeDocument{pages: pages}
	}
	return f
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{name: "two pages", pages: []string{"Hello", "World"}, want: "Hello\nWorld\n"},
		{name: "zero pages", pages: nil, want: ""},
		{name: "empty page keeps its separator", pages: []string{"a", "", "c"}, want: "a\n\nc\n"},
		{name: "multi-line page", pages: []string{"line 1\nline 2"}, want: "line 1\nline 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(newFake(map[string][]string{"sample.pdf": tt.pages}), zap.NewNop(), Options{})
			got, err := e.ExtractText("sample.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_PreservesPageOrder(t *testing.T) {
	pages := []string{"one", "two", "three", "four", "five"}
	fake := newFake(map[string][]string{"book.pdf": pages})
	e := New(fake, nil, Options{})

	doc, err := e.Extract("book.pdf")
	require.NoError(t, err)
	require.Equal(t, len(pages), doc.NumPage())
	assert.Equal(t, "fake", doc.Provider)
	assert.Equal(t, "book.pdf", doc.Source)
	for i, p := range doc.Pages {
		assert.Equal(t, i+1, p.Number)
		assert.Equal(t, pages[i], p.Text)
	}
	assert.True(t, fake.docs["book.pdf"].closed, "document must be closed")

	segments := strings.SplitAfter(FormatText(doc), "\n")
	assert.Equal(t, "", segments[len(segments)-1])
	assert.Len(t, segments[:len(segments)-1], len(pages))
}

func TestExtract_Errors(t *testing.T) {
	pageErr := errors.New("bad content stream")
	closeErr := errors.New("close failed")

	fake := newFake(map[string][]string{
		"broken.pdf":  {"ok", "bad"},
		"closing.pdf": {"ok"},
	})
	fake.docs["broken.pdf"].pageErrs = map[int]error{2: pageErr}
	fake.docs["closing.pdf"].closeErr = closeErr
	e := New(fake, nil, Options{})

	_, err := e.Extract("broken.pdf")
	require.ErrorIs(t, err, pageErr)
	assert.Contains(t, err.Error(), "page 2 of broken.pdf")
	assert.True(t, fake.docs["broken.pdf"].closed)

	_, err = e.Extract("closing.pdf")
	require.ErrorIs(t, err, closeErr)

	_, err = e.Extract("missing.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_Preflight(t *testing.T) {
	invalid := errors.New("invalid PDF structure")
	fake := newFake(map[string][]string{"a.pdf": {"text"}})
	e := New(fake, nil, Options{Preflight: func(string) error { return invalid }})

	_, err := e.Extract("a.pdf")
	assert.ErrorIs(t, err, invalid)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pdf_content.txt")
	e := New(newFake(map[string][]string{"sample.pdf": {"Hello", "World"}}), zap.NewNop(), Options{})

	res, err := e.ExtractFile("sample.pdf", out)
	require.NoError(t, err)
	assert.Equal(t, types.ExtractionDone, res.Status)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, len("Hello\nWorld\n"), res.Bytes)
	assert.Equal(t, "fake", res.Provider)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld\n", string(data))
}

func TestExtractFile_OverwritesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pdf_content.txt")
	require.NoError(t, os.WriteFile(out, []byte("stale content that is longer than the new one"), 0o644))

	e := New(newFake(map[string][]string{"sample.pdf": {"Hello"}}), nil, Options{})

	_, err := e.ExtractFile("sample.pdf", out)
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = e.ExtractFile("sample.pdf", out)
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, "Hello\n", string(first))
	assert.Equal(t, first, second)
}

func TestExtractFile_ZeroPagesWritesEmptyFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.txt")
	e := New(newFake(map[string][]string{"empty.pdf": nil}), nil, Options{})

	res, err := e.ExtractFile("empty.pdf", out)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Pages)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestExtractFile_FailureLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pdf_content.txt")
	e := New(newFake(nil), nil, Options{})

	res, err := e.ExtractFile(filepath.Join(dir, "missing.pdf"), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, types.ExtractionFailed, res.Status)
	assert.Equal(t, err.Error(), res.Error)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output must not be created on failure")

	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))
	_, err = e.ExtractFile(filepath.Join(dir, "missing.pdf"), out)
	require.Error(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "existing output must not be modified on failure")
}

func TestExtractFile_ErrorAsContent(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pdf_content.txt")
	missing := filepath.Join(dir, "missing.pdf")
	e := New(newFake(nil), nil, Options{ErrorAsContent: true})

	res, err := e.ExtractFile(missing, out)
	require.NoError(t, err)
	assert.Equal(t, types.ExtractionFailed, res.Status)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, res.Error, string(data))
	assert.Contains(t, string(data), "missing.pdf")
	assert.NotContains(t, string(data), "\n", "error content is a single line")
}

func TestExtractFile_RealPDF(t *testing.T) {
	dir := t.TempDir()
	pdfPath := pdftest.Write(t, dir, "sample.pdf", "Hello", "World")

	for _, name := range []string{provider.NameLedongthuc, provider.NameDslipak, provider.NameRSC} {
		t.Run(name, func(t *testing.T) {
			p, err := provider.Resolve([]string{name})
			require.NoError(t, err)
			e := New(p, nil, Options{})

			out := filepath.Join(t.TempDir(), "pdf_content.txt")
			res, err := e.ExtractFile(pdfPath, out)
			require.NoError(t, err)
			assert.Equal(t, 2, res.Pages)
			assert.Equal(t, name, res.Provider)

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, "Hello\nWorld\n", string(data))
		})
	}
}
