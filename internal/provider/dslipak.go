// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"

	dpdf "github.com/dslipak/pdf"
)

// dslipakProvider reads PDFs with github.com/dslipak/pdf, the secondary
// provider.
type dslipakProvider struct{}

func (dslipakProvider) Name() string    { return NameDslipak }
func (dslipakProvider) Available() bool { return true }

func (dslipakProvider) Open(path string) (Document, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r, err := func() (r *dpdf.Reader, err error) {
		defer recoverErr(&err, "parsing")
		return dpdf.NewReader(f, size)
	}()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &dslipakDocument{f: f, r: r}, nil
}

type dslipakDocument struct {
	f *os.File
	r *dpdf.Reader
}

func (d *dslipakDocument) NumPage() int { return d.r.NumPage() }

func (d *dslipakDocument) PageText(n int) (text string, err error) {
	defer recoverErr(&err, "parsing")

	p := d.r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *dslipakDocument) Close() error { return d.f.Close() }
