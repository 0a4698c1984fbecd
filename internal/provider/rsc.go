// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"
	"strings"

	rpdf "rsc.io/pdf"
)

// rscProvider reads PDFs with rsc.io/pdf. The library exposes positioned
// glyph runs rather than plain text, so runs are joined here.
type rscProvider struct{}

func (rscProvider) Name() string    { return NameRSC }
func (rscProvider) Available() bool { return true }

func (rscProvider) Open(path string) (Document, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r, err := func() (r *rpdf.Reader, err error) {
		defer recoverErr(&err, "parsing")
		return rpdf.NewReader(f, size)
	}()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &rscDocument{f: f, r: r}, nil
}

type rscDocument struct {
	f *os.File
	r *rpdf.Reader
}

func (d *rscDocument) NumPage() int { return d.r.NumPage() }

func (d *rscDocument) PageText(n int) (text string, err error) {
	defer recoverErr(&err, "parsing")

	p := d.r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return joinRuns(p.Content().Text), nil
}

func (d *rscDocument) Close() error { return d.f.Close() }

// joinRuns concatenates glyph runs in content order, starting a new line
// whenever the baseline moves. Glyph positioning can leave word gaps with no
// space glyph, so a space is inserted when the horizontal gap exceeds a
// fifth of the font size; runs without width information are joined
// directly.
func joinRuns(runs []rpdf.Text) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			switch {
			case t.Y != prev.Y:
				b.WriteByte('\n')
			case prev.W > 0 && t.X-(prev.X+prev.W) > prev.FontSize/5:
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
